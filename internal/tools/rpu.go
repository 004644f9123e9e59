package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/logging"
)

// RPUExtractor pulls the Dolby Vision RPU metadata stream out of an HEVC
// source: ffmpeg demuxes the video elementary stream, dovi_tool extracts
// the RPU from it.
type RPUExtractor struct {
	ffmpeg string
	dovi   string
	run    CommandRunner
	logger *slog.Logger
}

// NewRPUExtractor constructs an extractor from the configured tool names.
func NewRPUExtractor(cfg config.Tools, logger *slog.Logger) *RPUExtractor {
	return &RPUExtractor{
		ffmpeg: cfg.FFmpeg,
		dovi:   cfg.DoviTool,
		run:    DefaultRunner,
		logger: logging.NewComponentLogger(logger, "rpu"),
	}
}

// WithCommandRunner injects a custom runner for tests.
func (r *RPUExtractor) WithCommandRunner(run CommandRunner) {
	if r != nil && run != nil {
		r.run = run
	}
}

// Configured reports whether both required binaries are named in config.
func (r *RPUExtractor) Configured() bool {
	return r != nil && r.ffmpeg != "" && r.dovi != ""
}

// Extract writes the RPU for mkvPath to <workDir>/<base>.rpu.bin, going
// through an intermediate annex-B HEVC stream. Both steps are skipped when
// their output already exists.
func (r *RPUExtractor) Extract(ctx context.Context, mkvPath, workDir string) (string, error) {
	base := trimContainerExt(mkvPath)
	hevcPath := filepath.Join(workDir, base+".hevc")
	rpuPath := filepath.Join(workDir, base+".rpu.bin")

	if fileutil.NonEmpty(rpuPath) {
		r.logger.Debug("rpu already extracted", slog.String("file", rpuPath))
		return rpuPath, nil
	}

	if !fileutil.NonEmpty(hevcPath) {
		_, err := r.run(ctx, r.ffmpeg,
			"-nostdin", "-y",
			"-i", mkvPath,
			"-map", "0:v:0",
			"-c", "copy",
			"-bsf:v", "hevc_mp4toannexb",
			"-f", "hevc",
			hevcPath,
		)
		if err != nil {
			return "", fmt.Errorf("demux video stream from %s: %w", mkvPath, err)
		}
	}

	if _, err := r.run(ctx, r.dovi, "extract-rpu", hevcPath, "-o", rpuPath); err != nil {
		return "", fmt.Errorf("extract rpu from %s: %w", hevcPath, err)
	}
	r.logger.Info("extracted dolby vision rpu", slog.String("file", rpuPath))
	return rpuPath, nil
}

func trimContainerExt(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
