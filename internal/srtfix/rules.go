package srtfix

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Stats maps correction categories to the number of substitutions performed.
type Stats map[string]int

// Total sums the counts across all categories.
func (s Stats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

func (s Stats) add(category string, n int) {
	if n > 0 {
		s[category] += n
	}
}

// Merge folds the counts of other into s.
func (s Stats) Merge(other Stats) {
	for category, n := range other {
		s.add(category, n)
	}
}

// Correction categories reported in Stats.
const (
	CategoryZeroWidthStrip     = "zeroWidthStrip"
	CategoryLigatureFix        = "ligatureFix"
	CategoryGlobalReplacements = "globalReplacements"
	CategoryIFix               = "iFix"
	CategoryZeroToO            = "zeroToO"
	CategoryDigitToLetter      = "digitToLetter"
	CategoryQToG               = "qToG"
	CategoryWordCorrections    = "wordCorrections"
	CategoryPunctSpacing       = "punctSpacing"
	CategoryEllipsisSpacing    = "ellipsisSpacing"
	CategoryHyphenNormalize    = "hyphenNormalize"
	CategorySpaceCollapse      = "spaceCollapse"
	CategoryContractionSplit   = "contractionSplit"
)

// Rule rewrites one text line and reports how many substitutions it made.
// Every rule must be idempotent in isolation: applying it to its own output
// is a no-op.
type Rule struct {
	Category string
	Apply    func(text string) (string, int)
}

// Pipeline applies an ordered list of correction rules to text lines. The
// order is part of the contract: later rules operate on the output of
// earlier ones, so reordering is a semantic change.
type Pipeline struct {
	rules []Rule
}

// NewPipeline builds a pipeline over the given ordered rule list.
func NewPipeline(rules []Rule) *Pipeline {
	return &Pipeline{rules: rules}
}

// DefaultPipeline builds the standard OCR correction pipeline with the
// curated dictionary.
func DefaultPipeline() *Pipeline {
	return NewPipeline(DefaultRules(DefaultDictionary()))
}

// Rules returns the pipeline's rule list in application order.
func (p *Pipeline) Rules() []Rule {
	return p.rules
}

// Apply runs every rule over a single text line in order, crediting
// substitution counts to each rule's category in stats.
func (p *Pipeline) Apply(text string, stats Stats) string {
	for _, rule := range p.rules {
		next, n := rule.Apply(text)
		stats.add(rule.Category, n)
		text = next
	}
	return text
}

type patternFix struct {
	re   *regexp.Regexp
	repl string
}

// applyPatterns rewrites text with each fix in order, counting every match
// as one substitution.
func applyPatterns(text string, fixes []patternFix) (string, int) {
	count := 0
	for _, fix := range fixes {
		matches := fix.re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		text = fix.re.ReplaceAllString(text, fix.repl)
		count += len(matches)
	}
	return text, count
}

// Zero-width space and BOM characters that OCR output smuggles into lines.
var zeroWidthFixes = []patternFix{
	{regexp.MustCompile("[\u200b\ufeff]"), ""},
}

var ligatureFixes = []patternFix{
	{regexp.MustCompile("ﬁ"), "fi"},
	{regexp.MustCompile("ﬂ"), "fl"},
}

// globalFixes normalizes typographic punctuation to plain ASCII. Counted
// once per sub-rule that changed the line, not per character.
var globalFixes = []patternFix{
	{regexp.MustCompile("[“”„«»]"), `"`},
	{regexp.MustCompile("[‘’‚]"), "'"},
	{regexp.MustCompile("…"), "..."},
	{regexp.MustCompile("[—–]"), "-"},
}

func applyGlobalFixes(text string) (string, int) {
	count := 0
	for _, fix := range globalFixes {
		replaced := fix.re.ReplaceAllString(text, fix.repl)
		if replaced != text {
			count++
			text = replaced
		}
	}
	return text, count
}

// Anchored repairs for l, |, and 1 misread in place of the letter I: line
// starts and apostrophe-bound tokens. The flanked cases (token between
// spaces, pipe between letters) live in newConfusedIRule as rune scans.
var confusedIPrefixFixes = []patternFix{
	{regexp.MustCompile(`^(-\s*)[l|1](\s)`), "${1}I${2}"},
	{regexp.MustCompile(`^(-\s*)[l|1]'`), "${1}I'"},
}

var confusedISuffixFixes = []patternFix{
	{regexp.MustCompile(` [l|1]'`), " I'"},
	{regexp.MustCompile(`^\|(\s)`), "I${1}"},
	{regexp.MustCompile(` \|([a-zA-Z])`), " I${1}"},
}

var (
	confusedITokens = map[rune]rune{'l': 'I', '|': 'I', '1': 'I'}
	confusedIBars   = map[rune]rune{'|': 'I'}
)

func newConfusedIRule() Rule {
	isSpace := func(r rune) bool { return r == ' ' }
	return Rule{
		Category: CategoryIFix,
		Apply: func(text string) (string, int) {
			total := 0
			text, n := applyPatterns(text, confusedIPrefixFixes)
			total += n
			text, n = replaceFlanked(text, confusedITokens, isSpace)
			total += n
			text, n = applyPatterns(text, confusedISuffixFixes)
			total += n
			text, n = replaceFlanked(text, confusedIBars, unicode.IsLetter)
			total += n
			return text, total
		},
	}
}

// replaceFlanked rewrites runes from repl whose neighbors both satisfy
// flank. A rune scanner is used instead of a regexp: RE2 has no lookaround,
// and a pattern that consumes its flanks both misses overlapping runs and
// breaks idempotence on input like "a0a0a" or "a l l a", where adjacent
// matches share a flanking rune.
func replaceFlanked(text string, repl map[rune]rune, flank func(rune) bool) (string, int) {
	runes := []rune(text)
	count := 0
	for i := 1; i < len(runes)-1; i++ {
		to, ok := repl[runes[i]]
		if !ok {
			continue
		}
		if flank(runes[i-1]) && flank(runes[i+1]) {
			runes[i] = to
			count++
		}
	}
	if count == 0 {
		return text, 0
	}
	return string(runes), count
}

func replaceFlankedDigits(text string, repl map[rune]rune) (string, int) {
	return replaceFlanked(text, repl, unicode.IsLetter)
}

var (
	zeroToOFixes       = map[rune]rune{'0': 'o'}
	digitToLetterFixes = map[rune]rune{'5': 's', '1': 'l', '8': 'B'}
)

// trailingQFixes repairs q misread in place of g at word ends.
var trailingQFixes = []patternFix{
	{regexp.MustCompile(`q($|[\s.,!?;:)\]}"'])`), "g${1}"},
}

var punctSpacingFixes = []patternFix{
	{regexp.MustCompile(`[ \t]+([.!?,;:])`), "${1}"},
	{regexp.MustCompile(`([.!?])([A-Za-z])`), "${1} ${2}"},
}

var ellipsisSpacingFixes = []patternFix{
	{regexp.MustCompile(`[ \t]+\.\.\.`), "..."},
	{regexp.MustCompile(`\.\.\.([A-Za-z])`), "... ${1}"},
}

// Repeated hyphens collapse before the leading dialogue dash is spaced so a
// "--Hello" line normalizes in one pass.
var hyphenFixes = []patternFix{
	{regexp.MustCompile(`-{2,}`), "-"},
	{regexp.MustCompile(`^-([^\s-])`), "- ${1}"},
}

var spaceCollapseFixes = []patternFix{
	{regexp.MustCompile(` {2,}`), " "},
}

// contractionStems are the contractions that OCR glues to the following
// word. Matched case-insensitively; the replacement reuses the source text
// so casing survives.
var contractionStems = []string{
	"I'm", "you're", "we're", "they're", "it's", "he's", "she's",
	"I'd", "you'd", "he'd", "she'd", "we'd", "they'd",
	"I'll", "you'll", "he'll", "she'll", "we'll", "they'll",
}

func newContractionSplitRule() Rule {
	escaped := make([]string, 0, len(contractionStems))
	for _, stem := range contractionStems {
		escaped = append(escaped, regexp.QuoteMeta(stem))
	}
	fixes := []patternFix{
		{regexp.MustCompile(`\b((?i:` + strings.Join(escaped, "|") + `))([a-z]{2,})`), "${1} ${2}"},
	}
	return Rule{
		Category: CategoryContractionSplit,
		Apply: func(text string) (string, int) {
			return applyPatterns(text, fixes)
		},
	}
}

func newWordCorrectionRule(dictionary map[string]string) Rule {
	noop := Rule{
		Category: CategoryWordCorrections,
		Apply:    func(text string) (string, int) { return text, 0 },
	}
	if len(dictionary) == 0 {
		return noop
	}
	keys := make([]string, 0, len(dictionary))
	lookup := make(map[string]string, len(dictionary))
	for token, corrected := range dictionary {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || corrected == "" {
			continue
		}
		keys = append(keys, regexp.QuoteMeta(token))
		lookup[token] = corrected
	}
	if len(keys) == 0 {
		return noop
	}
	sort.Strings(keys)
	tokenPattern := regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`)
	return Rule{
		Category: CategoryWordCorrections,
		Apply: func(text string) (string, int) {
			count := 0
			out := tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
				corrected, ok := lookup[strings.ToLower(token)]
				if !ok {
					return token
				}
				count++
				return matchCapitalization(token, corrected)
			})
			return out, count
		},
	}
}

// matchCapitalization carries the original token's first-letter case onto
// the corrected word.
func matchCapitalization(original, corrected string) string {
	if original == "" || corrected == "" {
		return corrected
	}
	first := []rune(original)[0]
	out := []rune(corrected)
	if unicode.IsUpper(first) {
		out[0] = unicode.ToUpper(out[0])
	} else {
		out[0] = unicode.ToLower(out[0])
	}
	return string(out)
}

func patternRule(category string, fixes []patternFix) Rule {
	return Rule{
		Category: category,
		Apply: func(text string) (string, int) {
			return applyPatterns(text, fixes)
		},
	}
}

// DefaultRules returns the standard rule set in its fixed application
// order. The dictionary feeds the word-correction rule; pass
// DefaultDictionary() for the stock table or a custom map to extend it.
func DefaultRules(dictionary map[string]string) []Rule {
	return []Rule{
		patternRule(CategoryZeroWidthStrip, zeroWidthFixes),
		patternRule(CategoryLigatureFix, ligatureFixes),
		{Category: CategoryGlobalReplacements, Apply: applyGlobalFixes},
		newConfusedIRule(),
		{Category: CategoryZeroToO, Apply: func(text string) (string, int) {
			return replaceFlankedDigits(text, zeroToOFixes)
		}},
		{Category: CategoryDigitToLetter, Apply: func(text string) (string, int) {
			return replaceFlankedDigits(text, digitToLetterFixes)
		}},
		patternRule(CategoryQToG, trailingQFixes),
		newWordCorrectionRule(dictionary),
		patternRule(CategoryPunctSpacing, punctSpacingFixes),
		patternRule(CategoryEllipsisSpacing, ellipsisSpacingFixes),
		patternRule(CategoryHyphenNormalize, hyphenFixes),
		patternRule(CategorySpaceCollapse, spaceCollapseFixes),
		newContractionSplitRule(),
	}
}
