package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"splice/internal/tools"
)

// rpuStage preserves Dolby Vision metadata alongside the work files. It
// is a no-op when ffmpeg or dovi_tool are not configured.
type rpuStage struct {
	extractor *tools.RPUExtractor
	ffmpeg    string
	dovi      string
	logger    *slog.Logger
}

func newRPUStage(extractor *tools.RPUExtractor, ffmpeg, dovi string, logger *slog.Logger) *rpuStage {
	return &rpuStage{extractor: extractor, ffmpeg: ffmpeg, dovi: dovi, logger: logger}
}

func (s *rpuStage) Prepare(context.Context, *Job) error { return nil }

func (s *rpuStage) Execute(ctx context.Context, job *Job) error {
	if !s.extractor.Configured() {
		s.logger.Debug("rpu extraction not configured, skipping")
		return nil
	}
	rpuPath, err := s.extractor.Extract(ctx, job.Source, job.WorkDir)
	if err != nil {
		return err
	}
	job.RPUPath = rpuPath
	return nil
}

func (s *rpuStage) HealthCheck(context.Context) Health {
	if !s.extractor.Configured() {
		return Health{Name: "rpu", Ready: true, Detail: "not configured, stage skipped"}
	}
	for _, bin := range []string{s.ffmpeg, s.dovi} {
		if _, err := exec.LookPath(bin); err != nil {
			return Unhealthy("rpu", fmt.Sprintf("binary %q not found", bin))
		}
	}
	return Healthy("rpu")
}
