package srtfix

import (
	"regexp"
	"strings"
)

// LineKind identifies the structural role of a single subtitle line.
type LineKind int

const (
	// KindText is any non-blank line that is neither a cue number nor a
	// timing line. Only text lines are eligible for correction.
	KindText LineKind = iota
	// KindIndex is a cue sequence number: digits only, no surrounding
	// whitespace.
	KindIndex
	// KindTiming is an SRT timing line, "HH:MM:SS,mmm --> HH:MM:SS,mmm".
	KindTiming
	// KindBlank is a line that is empty after trimming.
	KindBlank
)

func (k LineKind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindTiming:
		return "timing"
	case KindBlank:
		return "blank"
	default:
		return "text"
	}
}

// ClassifiedLine pairs a raw line with its structural kind. Content is kept
// verbatim, including any trailing data after a timing range.
type ClassifiedLine struct {
	Kind    LineKind
	Content string
}

var (
	indexPattern  = regexp.MustCompile(`^\d+$`)
	timingPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3}\s+-->\s+\d{2}:\d{2}:\d{2},\d{3}`)
)

// Classify tags every line with its structural kind. Classification depends
// only on the line's own content; no cross-line state is consulted, so a
// malformed timing line simply falls through to KindText.
func Classify(lines []string) []ClassifiedLine {
	classified := make([]ClassifiedLine, 0, len(lines))
	for _, line := range lines {
		classified = append(classified, ClassifiedLine{Kind: classifyLine(line), Content: line})
	}
	return classified
}

func classifyLine(line string) LineKind {
	if strings.TrimSpace(line) == "" {
		return KindBlank
	}
	if indexPattern.MatchString(line) {
		return KindIndex
	}
	if timingPattern.MatchString(line) {
		return KindTiming
	}
	return KindText
}
