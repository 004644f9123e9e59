package srtfix

import (
	"strings"
	"testing"
)

func ruleByCategory(t *testing.T, category string) Rule {
	t.Helper()
	for _, rule := range DefaultRules(DefaultDictionary()) {
		if rule.Category == category {
			return rule
		}
	}
	t.Fatalf("no rule for category %q", category)
	return Rule{}
}

func TestZeroWidthStrip(t *testing.T) {
	rule := ruleByCategory(t, CategoryZeroWidthStrip)
	got, n := rule.Apply("Hel\u200blo\ufeff there")
	if got != "Hello there" {
		t.Fatalf("got %q", got)
	}
	if n != 2 {
		t.Fatalf("expected 2 substitutions, got %d", n)
	}
}

func TestLigatureFix(t *testing.T) {
	rule := ruleByCategory(t, CategoryLigatureFix)
	got, n := rule.Apply("ﬁnal ﬂow")
	if got != "final flow" {
		t.Fatalf("got %q", got)
	}
	if n != 2 {
		t.Fatalf("expected 2 substitutions, got %d", n)
	}
}

func TestGlobalReplacementsCountPerSubRule(t *testing.T) {
	rule := ruleByCategory(t, CategoryGlobalReplacements)
	got, n := rule.Apply("“Hi” … he said — twice")
	if got != `"Hi" ... he said - twice` {
		t.Fatalf("got %q", got)
	}
	// Quotes, ellipsis, and dash each count once regardless of how many
	// characters they replaced on the line.
	if n != 3 {
		t.Fatalf("expected 3 substitutions, got %d", n)
	}
}

func TestConfusedICases(t *testing.T) {
	rule := ruleByCategory(t, CategoryIFix)
	cases := []struct {
		name  string
		in    string
		want  string
		count int
	}{
		{"leading dash", "- l mean it", "- I mean it", 1},
		{"leading dash digit", "- 1 mean it", "- I mean it", 1},
		{"leading dash contraction", "- l'm here", "- I'm here", 1},
		{"standalone word", "so l said", "so I said", 1},
		{"contraction start", "and l've done it", "and I've done it", 1},
		{"leading pipe", "| think so", "I think so", 1},
		{"pipe before letter", "say |t again", "say It again", 1},
		{"pipe mid word", "w|ll you", "wIll you", 1},
		{"two positions", "- l see, l said", "- I see, I said", 2},
		{"adjacent standalone tokens", "a l l a", "a I I a", 2},
		{"leading dash then adjacent tokens", "- l l said so", "- I I said so", 2},
		{"alternating pipes", "a|a|a", "aIaIa", 2},
		{"already correct", "- I mean it", "- I mean it", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n := rule.Apply(tc.in)
			if got != tc.want {
				t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if n != tc.count {
				t.Fatalf("Apply(%q) count = %d, want %d", tc.in, n, tc.count)
			}
		})
	}
}

func TestFlankedDigitReplacements(t *testing.T) {
	zero := ruleByCategory(t, CategoryZeroToO)
	if got, n := zero.Apply("that c0mes later"); got != "that comes later" || n != 1 {
		t.Fatalf("got %q (%d)", got, n)
	}
	if got, n := zero.Apply("a0a0a"); got != "aoaoa" || n != 2 {
		t.Fatalf("overlapping run: got %q (%d)", got, n)
	}

	digits := ruleByCategory(t, CategoryDigitToLetter)
	if got, _ := digits.Apply("fee1ing ca5e ro8ert"); got != "feeling case roBert" {
		t.Fatalf("got %q", got)
	}
}

func TestNumericGuard(t *testing.T) {
	for _, category := range []string{CategoryZeroToO, CategoryDigitToLetter} {
		rule := ruleByCategory(t, category)
		for _, in := range []string{"1080p", "Room 237", "call 555-0134", "24"} {
			if got, n := rule.Apply(in); got != in || n != 0 {
				t.Fatalf("%s altered %q to %q (%d substitutions)", category, in, got, n)
			}
		}
	}
}

func TestTrailingQRepair(t *testing.T) {
	rule := ruleByCategory(t, CategoryQToG)
	cases := []struct {
		in   string
		want string
	}{
		{"talkinq now", "talking now"},
		{"somethinq", "something"},
		{"(runninq)", "(running)"},
		{"wronq, yes", "wrong, yes"},
		{"quiet aqain", "quiet aqain"},
	}
	for _, tc := range cases {
		if got, _ := rule.Apply(tc.in); got != tc.want {
			t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWordCorrections(t *testing.T) {
	rule := ruleByCategory(t, CategoryWordCorrections)
	if got, n := rule.Apply("Teh cat sat."); got != "The cat sat." || n != 1 {
		t.Fatalf("got %q (%d)", got, n)
	}
	if got, n := rule.Apply("teh cat adn teh dog"); got != "the cat and the dog" || n != 3 {
		t.Fatalf("got %q (%d)", got, n)
	}
	// Whole-word matching only.
	if got, n := rule.Apply("tehran"); got != "tehran" || n != 0 {
		t.Fatalf("matched inside a word: %q (%d)", got, n)
	}
}

func TestWordCorrectionsCustomDictionary(t *testing.T) {
	rules := DefaultRules(map[string]string{"helo": "hello"})
	pipeline := NewPipeline(rules)
	stats := Stats{}
	if got := pipeline.Apply("Helo there", stats); got != "Hello there" {
		t.Fatalf("got %q", got)
	}
	if stats[CategoryWordCorrections] != 1 {
		t.Fatalf("stats = %v", stats)
	}
}

func TestDictionaryClosed(t *testing.T) {
	dict := DefaultDictionary()
	for token, corrected := range dict {
		if _, ok := dict[strings.ToLower(corrected)]; ok {
			t.Fatalf("corrected value %q (for %q) is itself a dictionary key; rule would not be idempotent", corrected, token)
		}
	}
}

func TestPunctuationSpacing(t *testing.T) {
	rule := ruleByCategory(t, CategoryPunctSpacing)
	cases := []struct {
		in   string
		want string
	}{
		{"Hello , world", "Hello, world"},
		{"Wait !", "Wait!"},
		{"Stop.Now", "Stop. Now"},
		{"Really?Yes", "Really? Yes"},
		{"Fine; done", "Fine; done"},
	}
	for _, tc := range cases {
		if got, _ := rule.Apply(tc.in); got != tc.want {
			t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEllipsisSpacing(t *testing.T) {
	rule := ruleByCategory(t, CategoryEllipsisSpacing)
	if got, _ := rule.Apply("wait ...then"); got != "wait... then" {
		t.Fatalf("got %q", got)
	}
}

func TestHyphenNormalize(t *testing.T) {
	rule := ruleByCategory(t, CategoryHyphenNormalize)
	if got, _ := rule.Apply("--Hello there"); got != "- Hello there" {
		t.Fatalf("got %q", got)
	}
	if got, n := rule.Apply("- Hello there"); got != "- Hello there" || n != 0 {
		t.Fatalf("already normalized: got %q (%d)", got, n)
	}
}

func TestSpaceCollapse(t *testing.T) {
	rule := ruleByCategory(t, CategorySpaceCollapse)
	if got, n := rule.Apply("a  b   c"); got != "a b c" || n != 2 {
		t.Fatalf("got %q (%d)", got, n)
	}
	if got, _ := rule.Apply("a\t\tb"); got != "a\t\tb" {
		t.Fatalf("tabs must be untouched, got %q", got)
	}
}

func TestContractionSplit(t *testing.T) {
	rule := ruleByCategory(t, CategoryContractionSplit)
	cases := []struct {
		in   string
		want string
	}{
		{"I'min the car", "I'm in the car"},
		{"you'regoing home", "you're going home"},
		{"she'llnever know", "she'll never know"},
		{"I'm in the car", "I'm in the car"},
		{"it'sgone now", "it's gone now"},
		// One trailing letter is not a glued word.
		{"it'sa", "it'sa"},
	}
	for _, tc := range cases {
		got, _ := rule.Apply(tc.in)
		if got != tc.want {
			t.Fatalf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Every rule must be a fixpoint on its own output, whatever the input.
func TestRulesIdempotentInIsolation(t *testing.T) {
	corpus := []string{
		"- l mean, I do.",
		"- 1 said so",
		"| think so",
		"say |t, w|ll you",
		"a l l a",
		"a|a|a",
		"Hel\u200blo\ufeff",
		"ﬁnal ﬂow",
		"“Hi” … he said — twice",
		"that c0mes ear1ier",
		"a0a0a",
		"1080p",
		"talkinq now, somethinq",
		"Teh cat adn teh dog",
		"Hello , world.Stop",
		"wait ...then",
		"--Hello",
		"a  b   c",
		"I'min the car, you'regoing home",
		"",
		"   ",
		"plain dialogue with nothing to fix",
	}
	for _, rule := range DefaultRules(DefaultDictionary()) {
		for _, in := range corpus {
			once, _ := rule.Apply(in)
			twice, n := rule.Apply(once)
			if twice != once {
				t.Fatalf("%s not idempotent on %q: %q then %q", rule.Category, in, once, twice)
			}
			if n != 0 {
				t.Fatalf("%s reported %d substitutions on its own output %q", rule.Category, n, once)
			}
		}
	}
}

func TestDefaultRuleOrder(t *testing.T) {
	want := []string{
		CategoryZeroWidthStrip,
		CategoryLigatureFix,
		CategoryGlobalReplacements,
		CategoryIFix,
		CategoryZeroToO,
		CategoryDigitToLetter,
		CategoryQToG,
		CategoryWordCorrections,
		CategoryPunctSpacing,
		CategoryEllipsisSpacing,
		CategoryHyphenNormalize,
		CategorySpaceCollapse,
		CategoryContractionSplit,
	}
	rules := DefaultRules(DefaultDictionary())
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, rule := range rules {
		if rule.Category != want[i] {
			t.Fatalf("rule %d is %q, want %q", i, rule.Category, want[i])
		}
	}
}
