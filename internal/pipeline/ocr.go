package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"splice/internal/manifest"
	"splice/internal/tools"
)

// ocrStage converts bitmap subtitle tracks to SRT so the correction
// stage can process them. It is a no-op when no OCR binary is
// configured.
type ocrStage struct {
	converter *tools.OCRConverter
	bin       string
	logger    *slog.Logger
}

func newOCRStage(converter *tools.OCRConverter, bin string, logger *slog.Logger) *ocrStage {
	return &ocrStage{converter: converter, bin: bin, logger: logger}
}

func (s *ocrStage) Prepare(context.Context, *Job) error { return nil }

func (s *ocrStage) Execute(ctx context.Context, job *Job) error {
	if !s.converter.Configured() {
		s.logger.Debug("ocr converter not configured, skipping")
		return nil
	}
	converted, err := s.converter.Convert(ctx, job.WorkDir, job.Tracks)
	if err != nil {
		return err
	}
	existing := make(map[string]struct{}, len(job.Tracks))
	for _, track := range job.Tracks {
		existing[track.FileName] = struct{}{}
	}
	added := 0
	for _, track := range converted {
		if _, ok := existing[track.FileName]; ok {
			continue
		}
		job.Tracks = append(job.Tracks, track)
		added++
	}
	if added == 0 {
		return nil
	}
	manifestPath := filepath.Join(job.WorkDir, manifestFileName)
	if err := manifest.WriteFile(manifestPath, job.Tracks); err != nil {
		return fmt.Errorf("update track manifest: %w", err)
	}
	return nil
}

func (s *ocrStage) HealthCheck(context.Context) Health {
	if !s.converter.Configured() {
		return Health{Name: "ocr", Ready: true, Detail: "not configured, stage skipped"}
	}
	if _, err := exec.LookPath(s.bin); err != nil {
		return Unhealthy("ocr", fmt.Sprintf("binary %q not found", s.bin))
	}
	return Healthy("ocr")
}
