package bypass

import (
	"testing"

	"storyforge-hq/warden/pkg/safety/normalize"
)

func detect(input string) []Flag {
	return Detect(input, normalize.Normalize(input))
}

func hasFlag(flags []Flag, want Flag) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func TestDetect_Repetition(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"aaaaaaaa", true},
		{"aaaaa", true},
		{"aaaa", false},
		{"Bob", false},
	}

	for _, tt := range tests {
		got := hasFlag(detect(tt.input), FlagRepeatedCharacters)
		if got != tt.want {
			t.Errorf("Detect(%q) repetition = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDetect_RepetitionRevealedByNormalization(t *testing.T) {
	// The raw form alternates case so no code point repeats, but case
	// folding in the normalized form reveals the run.
	if !hasFlag(detect("aAaAaAaAaA"), FlagRepeatedCharacters) {
		t.Error("case-alternating repetition not flagged via normalized form")
	}
}

func TestDetect_MixedScript(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"latin only", "Alice", false},
		{"cyrillic only", "Саша", false},
		{"latin plus cyrillic lookalike", "Аlice", true}, // leading А is U+0410
		{"greek mix", "Bοb", true},                       // ο is U+03BF
		{"two tokens different scripts", "Alice Саша", false},
		{"digits are neutral", "Alice2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(detect(tt.input), FlagMixedScript)
			if got != tt.want {
				t.Errorf("Detect(%q) mixed script = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetect_InvisibleCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"zero width space", "Al​ice", true},
		{"zero width joiner", "Al‍ice", true},
		{"bidi override", "Bob‮", true},
		{"bom", "\uFEFFBob", true},
		{"plain text", "Bob", false},
		{"regular space", "Mary Jane", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(detect(tt.input), FlagInvisibleCharacters)
			if got != tt.want {
				t.Errorf("Detect(%q) invisible = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetect_NumericOnly(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"12345", true},
		{"Bob 123", true},
		{"Bob123", false},
		{"Bob", false},
	}

	for _, tt := range tests {
		got := hasFlag(detect(tt.input), FlagNumericOnly)
		if got != tt.want {
			t.Errorf("Detect(%q) numeric = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDetect_CleanInputHasNoFlags(t *testing.T) {
	for _, input := range []string{"Bob", "Mary Jane", "O'Malley", "Anne-Marie"} {
		if flags := detect(input); len(flags) != 0 {
			t.Errorf("Detect(%q) = %v, want no flags", input, flags)
		}
	}
}

func TestDetect_DeterministicOrder(t *testing.T) {
	// An input tripping several signals reports them in a fixed order.
	input := "aaaaaaaa​ 12345"
	first := detect(input)
	for i := 0; i < 10; i++ {
		if got := detect(input); len(got) != len(first) {
			t.Fatalf("flag count varies: %v vs %v", got, first)
		}
	}
	want := []Flag{FlagRepeatedCharacters, FlagInvisibleCharacters, FlagNumericOnly}
	if len(first) != len(want) {
		t.Fatalf("Detect(%q) = %v, want %v", input, first, want)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("flag[%d] = %q, want %q", i, first[i], want[i])
		}
	}
}
