package combination

// Built-in magic-word catalog, used when no categories are configured.
// Words are chosen for a three-to-eight-year-old audience; a handful of
// mood and creature words are individually fine but unsafe in particular
// combinations, which the default forbidden table covers.

var defaultCatalog = map[string][]string{
	"creatures": {
		"dragon", "unicorn", "fairy", "bunny", "kitten", "puppy",
		"monster", "robot", "dinosaur", "owl", "fox", "bear",
		"butterfly", "dolphin", "penguin", "turtle", "hedgehog", "pony",
		"squirrel", "ladybug", "elephant", "giraffe",
	},
	"places": {
		"castle", "forest", "meadow", "beach", "mountain", "garden",
		"village", "island", "rainbow", "moon", "star", "cloud",
		"cave", "river", "treehouse", "playground", "library", "farm",
		"lighthouse", "harbor", "valley", "waterfall",
	},
	"objects": {
		"wand", "crown", "balloon", "kite", "lantern", "teapot",
		"umbrella", "paintbrush", "telescope", "compass", "drum", "flute",
		"basket", "blanket", "candle", "mirror", "seashell", "acorn",
		"feather", "ribbon", "marble", "whistle",
	},
	"moods": {
		"happy", "brave", "curious", "gentle", "silly", "sleepy",
		"cheerful", "kind", "proud", "shy", "dark", "stormy",
		"scary", "mysterious", "quiet", "bouncy", "dreamy", "sparkly",
		"cozy", "giggly", "friendly", "wiggly",
	},
}

// defaultForbidden lists selections whose combined meaning is too intense
// for the audience even though each word is individually approved.
var defaultForbidden = [][]string{
	{"scary", "monster", "dark"},
	{"scary", "monster", "cave"},
	{"dark", "monster", "cave"},
	{"stormy", "dark", "cave"},
	{"scary", "dark", "forest"},
	{"mysterious", "monster", "dark"},
	{"scary", "stormy", "monster"},
}
