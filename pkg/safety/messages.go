package safety

// childMessages maps each rejection kind to a fixed, gentle message for
// the child. Messages never mention security mechanics or what was
// detected.
var childMessages = map[ErrorKind]string{
	KindPromptInjection:          "That name looks a bit tricky! Let's pick a different name for our hero.",
	KindInappropriateContent:     "That name might be too scary for our story. Let's try a friendlier one!",
	KindCharacterRuleViolation:   "Let's use a name with regular letters, like Maya or Sam!",
	KindDuplicateSelection:       "Oops, you picked the same magic word twice! Let's choose three different ones.",
	KindUnapprovedSelection:      "Hmm, that word isn't on our magic word list. Try picking one from the list!",
	KindInappropriateCombination: "Those magic words don't mix well together. Let's try a different combination!",
	KindRateLimited:              "Let's take a little break! Try again in a couple of minutes.",
}

// MessageFor returns the child-friendly message for a rejection kind.
func MessageFor(kind ErrorKind) string {
	return childMessages[kind]
}
