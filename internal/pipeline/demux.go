package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"splice/internal/fileutil"
	"splice/internal/manifest"
	"splice/internal/tools"
)

// manifestFileName is the track manifest written into each work
// directory so resumed runs reuse the original probe result.
const manifestFileName = "tracks.manifest"

// demuxStage probes the source and extracts its subtitle tracks.
type demuxStage struct {
	demuxer    *tools.Demuxer
	mkvmerge   string
	mkvextract string
	logger     *slog.Logger
}

func newDemuxStage(demuxer *tools.Demuxer, mkvmerge, mkvextract string, logger *slog.Logger) *demuxStage {
	return &demuxStage{demuxer: demuxer, mkvmerge: mkvmerge, mkvextract: mkvextract, logger: logger}
}

func (s *demuxStage) Prepare(_ context.Context, job *Job) error {
	if !fileutil.NonEmpty(job.Source) {
		return fmt.Errorf("source %s does not exist or is empty", job.Source)
	}
	if err := os.MkdirAll(job.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	return nil
}

func (s *demuxStage) Execute(ctx context.Context, job *Job) error {
	manifestPath := filepath.Join(job.WorkDir, manifestFileName)
	if fileutil.NonEmpty(manifestPath) {
		tracks, err := manifest.ReadFile(manifestPath)
		if err != nil {
			return fmt.Errorf("read track manifest: %w", err)
		}
		job.Tracks = tracks
		s.logger.Debug("reusing track manifest", slog.Int("tracks", len(tracks)))
	} else {
		tracks, err := s.demuxer.Identify(ctx, job.Source)
		if err != nil {
			return err
		}
		job.Tracks = tracks
		if err := manifest.WriteFile(manifestPath, tracks); err != nil {
			return fmt.Errorf("write track manifest: %w", err)
		}
	}
	return s.demuxer.Extract(ctx, job.Source, job.WorkDir, job.Tracks)
}

func (s *demuxStage) HealthCheck(context.Context) Health {
	for _, bin := range []string{s.mkvmerge, s.mkvextract} {
		if _, err := exec.LookPath(bin); err != nil {
			return Unhealthy("demux", fmt.Sprintf("binary %q not found", bin))
		}
	}
	return Healthy("demux")
}
