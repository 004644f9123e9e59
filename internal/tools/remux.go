package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/language"
	"splice/internal/logging"
	"splice/internal/manifest"
)

// Remuxer rebuilds the container with mkvmerge, replacing its subtitle
// tracks with the corrected sidecar files.
type Remuxer struct {
	mkvmerge string
	run      CommandRunner
	logger   *slog.Logger
}

// NewRemuxer constructs a remuxer from the configured tool name.
func NewRemuxer(cfg config.Tools, logger *slog.Logger) *Remuxer {
	return &Remuxer{
		mkvmerge: cfg.MkvMerge,
		run:      DefaultRunner,
		logger:   logging.NewComponentLogger(logger, "remux"),
	}
}

// WithCommandRunner injects a custom runner for tests.
func (m *Remuxer) WithCommandRunner(r CommandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// Remux writes outputPath from mkvPath plus the given text tracks from
// workDir. Existing subtitle tracks in the source are dropped in favor of
// the sidecars. The write is atomic: mkvmerge targets a temporary file
// which is renamed into place on success. An existing non-empty output is
// left alone.
func (m *Remuxer) Remux(ctx context.Context, mkvPath, workDir, outputPath string, tracks []manifest.Track) error {
	if fileutil.NonEmpty(outputPath) {
		m.logger.Debug("output already remuxed", slog.String("file", outputPath))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	tmpPath := outputPath + ".tmp.mkv"
	args := []string{"-o", tmpPath, "--no-subtitles", mkvPath}
	for _, track := range tracks {
		args = append(args,
			"--language", "0:"+language.ToISO3(track.Language),
			"--track-name", "0:"+track.DisplayTitle(),
		)
		if track.Forced {
			args = append(args, "--forced-display-flag", "0:yes")
		}
		args = append(args, filepath.Join(workDir, track.FileName))
	}

	if _, err := m.run(ctx, m.mkvmerge, args...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("remux %s: %w", mkvPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalize %s: %w", outputPath, err)
	}
	m.logger.Info("remuxed container",
		slog.String("output", outputPath), slog.Int("subtitle_tracks", len(tracks)))
	return nil
}
