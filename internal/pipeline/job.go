package pipeline

import (
	"splice/internal/manifest"
	"splice/internal/srtfix"
)

// Job carries the state of one source file through the stages.
type Job struct {
	ID         string
	Source     string
	WorkDir    string
	OutputPath string

	// Tracks is the subtitle manifest, extended as stages produce new
	// sidecar files (OCR adds text tracks next to their bitmap sources).
	Tracks []manifest.Track

	// RPUPath is set when Dolby Vision metadata was extracted.
	RPUPath string

	// CorrectedTracks counts tracks the correction stage modified.
	CorrectedTracks int
	Stats           srtfix.Stats
}

// TotalFixes returns the number of corrections applied across all tracks.
func (j *Job) TotalFixes() int {
	return j.Stats.Total()
}
