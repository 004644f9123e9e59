package srtfix

import "strings"

// Engine corrects OCR artifacts in a whole SRT document.
type Engine struct {
	pipeline *Pipeline
}

// NewEngine constructs an engine around the given rule pipeline. A nil
// pipeline selects DefaultPipeline.
func NewEngine(pipeline *Pipeline) *Engine {
	if pipeline == nil {
		pipeline = DefaultPipeline()
	}
	return &Engine{pipeline: pipeline}
}

// Report summarizes the correction of one document.
type Report struct {
	Original  string
	Corrected string
	Changed   bool
	Stats     Stats
}

// Correct splits documentText into lines, runs the rule pipeline over text
// lines, and reassembles the document preserving the original joins. Index,
// timing, and blank lines pass through verbatim. Changed is true iff the
// output differs byte for byte from the input.
//
// If a rule panics the whole document fails closed: the original text is
// returned with Changed=false and zero stats. A partially corrected
// subtitle is worse than an uncorrected one.
func (e *Engine) Correct(documentText string) (report Report) {
	report = Report{Original: documentText, Corrected: documentText, Stats: Stats{}}
	defer func() {
		if recover() != nil {
			report = Report{Original: documentText, Corrected: documentText, Stats: Stats{}}
		}
	}()
	if documentText == "" {
		return report
	}

	lines := strings.Split(documentText, "\n")
	corrected := make([]string, len(lines))
	stats := Stats{}
	for i, line := range lines {
		content, cr := splitCarriageReturn(line)
		if classifyLine(content) != KindText {
			corrected[i] = line
			continue
		}
		corrected[i] = e.pipeline.Apply(content, stats) + cr
	}

	report.Corrected = strings.Join(corrected, "\n")
	report.Changed = report.Corrected != documentText
	report.Stats = stats
	return report
}

// splitCarriageReturn peels a trailing CR off a line split on LF so CRLF
// documents classify correctly and reassemble byte for byte.
func splitCarriageReturn(line string) (content, cr string) {
	if strings.HasSuffix(line, "\r") {
		return line[:len(line)-1], "\r"
	}
	return line, ""
}
