package patterns

// Built-in rule tables. Configuration entries extend these lists unless
// replace_defaults is set; see pkg/config.
//
// Entries are plain lowercase phrases and terms. The matcher compiles them
// into bounded, case-insensitive patterns; nothing here is a raw regex.

// defaultInjectionPhrases are phrases that attempt to steer the downstream
// story-generation model. Matching is against normalized text, so spacing
// and leetspeak variants of these phrases are caught as well.
var defaultInjectionPhrases = []string{
	"ignore all previous instructions",
	"ignore previous instructions",
	"ignore the above",
	"disregard previous instructions",
	"disregard all instructions",
	"forget your instructions",
	"forget everything above",
	"new instructions",
	"system prompt",
	"you are now",
	"act as if",
	"pretend you are",
	"pretend to be",
	"developer mode",
	"do anything now",
	"jailbreak",
	"override safety",
	"repeat your prompt",
	"reveal your instructions",
	"print your instructions",
}

// defaultBlockedTerms are literal terms inappropriate for an audience of
// three-to-eight-year-olds. The list leans toward violence and fear rather
// than profanity because the field being guarded is a character name in a
// children's story.
var defaultBlockedTerms = []string{
	"scary",
	"violent",
	"death",
	"dead",
	"die",
	"kill",
	"killer",
	"murder",
	"hurt",
	"blood",
	"bloody",
	"weapon",
	"gun",
	"knife",
	"fight",
	"hate",
	"demon",
	"devil",
	"terror",
	"poison",
	"corpse",
	"zombie",
}

// defaultObfuscatedTerms are terms frequently hidden by spacing the letters
// out or padding them with punctuation ("k i l l", "k.i.l.l"). The matcher
// compiles each into a gap-tolerant pattern. Plain leetspeak ("k1ll") needs
// no entry here: normalization folds it into the literal table's reach.
var defaultObfuscatedTerms = []string{
	"kill",
	"die",
	"dead",
	"hate",
	"blood",
	"weapon",
	"gun",
	"knife",
	"murder",
	"demon",
}

// defaultHomophones are phonetic respellings that sound inappropriate when
// read aloud by the text-to-speech stage even though the literal spelling
// passes the blocked-terms table.
var defaultHomophones = []string{
	"kil",
	"kild",
	"ded",
	"dye",
	"blud",
	"nife",
	"wepon",
	"merder",
	"gostly",
	"skary",
	"skarey",
	"terrer",
}
