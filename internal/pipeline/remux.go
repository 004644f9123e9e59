package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"splice/internal/manifest"
	"splice/internal/tools"
)

// remuxStage rebuilds the output container with the corrected text
// tracks in place of the originals.
type remuxStage struct {
	remuxer  *tools.Remuxer
	mkvmerge string
	logger   *slog.Logger
}

func newRemuxStage(remuxer *tools.Remuxer, mkvmerge string, logger *slog.Logger) *remuxStage {
	return &remuxStage{remuxer: remuxer, mkvmerge: mkvmerge, logger: logger}
}

func (s *remuxStage) Prepare(context.Context, *Job) error { return nil }

func (s *remuxStage) Execute(ctx context.Context, job *Job) error {
	var text []manifest.Track
	for _, track := range job.Tracks {
		if track.IsText() {
			text = append(text, track)
		}
	}
	return s.remuxer.Remux(ctx, job.Source, job.WorkDir, job.OutputPath, text)
}

func (s *remuxStage) HealthCheck(context.Context) Health {
	if _, err := exec.LookPath(s.mkvmerge); err != nil {
		return Unhealthy("remux", fmt.Sprintf("binary %q not found", s.mkvmerge))
	}
	return Healthy("remux")
}
