package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/logging"
	"splice/internal/manifest"
)

// OCRConverter turns bitmap subtitle tracks (VobSub) into SRT files using
// an external OCR binary.
type OCRConverter struct {
	bin    string
	run    CommandRunner
	logger *slog.Logger
}

// NewOCRConverter constructs a converter from the configured tool name.
func NewOCRConverter(cfg config.Tools, logger *slog.Logger) *OCRConverter {
	return &OCRConverter{
		bin:    cfg.OCRConverter,
		run:    DefaultRunner,
		logger: logging.NewComponentLogger(logger, "ocr"),
	}
}

// WithCommandRunner injects a custom runner for tests.
func (o *OCRConverter) WithCommandRunner(r CommandRunner) {
	if o != nil && r != nil {
		o.run = r
	}
}

// Configured reports whether an OCR binary is named in config.
func (o *OCRConverter) Configured() bool {
	return o != nil && o.bin != ""
}

// Convert OCRs every dvd_subtitle track in tracks that sits in workDir and
// returns the resulting text tracks. Tracks whose SRT already exists are
// not re-converted but still appear in the result, so a resumed run sees
// the same manifest.
func (o *OCRConverter) Convert(ctx context.Context, workDir string, tracks []manifest.Track) ([]manifest.Track, error) {
	var converted []manifest.Track
	for _, track := range tracks {
		if track.Codec != "dvd_subtitle" {
			continue
		}
		// vobsub2srt takes the .idx/.sub basename and writes <base>.srt.
		base := strings.TrimSuffix(track.FileName, filepath.Ext(track.FileName))
		srtName := base + ".srt"
		srtPath := filepath.Join(workDir, srtName)

		if !fileutil.NonEmpty(srtPath) {
			args := []string{}
			if lang := track.Language; lang != "" {
				args = append(args, "--lang", lang)
			}
			args = append(args, filepath.Join(workDir, base))
			if _, err := o.run(ctx, o.bin, args...); err != nil {
				return nil, fmt.Errorf("ocr track %d of %s: %w", track.TrackIndex, track.FileName, err)
			}
			o.logger.Info("converted bitmap subtitle",
				slog.String("from", track.FileName), slog.String("to", srtName))
		}

		out := track
		out.FileName = srtName
		out.Codec = "subrip"
		converted = append(converted, out)
	}
	return converted, nil
}
