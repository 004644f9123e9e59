package srtfix

// DefaultDictionary returns the curated word-correction table: common OCR
// and transposition errors mapped to their corrected spellings. Matching is
// case-insensitive on whole words; the corrected word inherits the original
// token's first-letter case.
//
// Corrected values must never themselves be dictionary keys, otherwise the
// rule would not be idempotent. TestDictionaryClosed enforces this.
func DefaultDictionary() map[string]string {
	return map[string]string{
		"teh":     "the",
		"hte":     "the",
		"tbe":     "the",
		"taht":    "that",
		"adn":     "and",
		"nad":     "and",
		"amd":     "and",
		"wich":    "which",
		"waht":    "what",
		"thier":   "their",
		"freind":  "friend",
		"becuase": "because",
		"recieve": "receive",
		"wiht":    "with",
		"tihs":    "this",
		"littel":  "little",
		"jsut":    "just",
		"woudl":   "would",
		"coudl":   "could",
		"shoudl":  "should",
	}
}

// MergeDictionaries overlays extra entries onto a base table without
// mutating either argument. Extra entries win on conflict.
func MergeDictionaries(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for token, corrected := range base {
		merged[token] = corrected
	}
	for token, corrected := range extra {
		merged[token] = corrected
	}
	return merged
}
