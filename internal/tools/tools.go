package tools

import (
	"fmt"
	"os/exec"
	"strings"

	"splice/internal/config"
)

// Requirement defines an external dependency splice relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the requirement list from the configured tool names.
func Requirements(cfg config.Tools) []Requirement {
	return []Requirement{
		{Name: "mkvmerge", Command: cfg.MkvMerge, Description: "container probing and remuxing"},
		{Name: "mkvextract", Command: cfg.MkvExtract, Description: "subtitle and video track extraction"},
		{Name: "ffmpeg", Command: cfg.FFmpeg, Description: "video elementary stream demux", Optional: true},
		{Name: "dovi_tool", Command: cfg.DoviTool, Description: "Dolby Vision RPU extraction", Optional: true},
		{Name: "ocr converter", Command: cfg.OCRConverter, Description: "bitmap subtitle OCR to SRT", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
