package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"splice/internal/config"
	"splice/internal/journal"
	"splice/internal/logging"
	"splice/internal/tools"
)

// stageEntry pairs a stage with the name the runner logs it under.
type stageEntry struct {
	name    string
	handler Handler
}

// Runner drives a source file through every stage in order.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger

	demuxer   *tools.Demuxer
	extractor *tools.RPUExtractor
	converter *tools.OCRConverter
	remuxer   *tools.Remuxer

	stages []stageEntry
}

// NewRunner wires the stages from config. The journal store may be nil
// when persistence is not wanted.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *journal.Store) *Runner {
	r := &Runner{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		demuxer:   tools.NewDemuxer(cfg.Tools, logger),
		extractor: tools.NewRPUExtractor(cfg.Tools, logger),
		converter: tools.NewOCRConverter(cfg.Tools, logger),
		remuxer:   tools.NewRemuxer(cfg.Tools, logger),
	}
	r.stages = []stageEntry{
		{"demux", newDemuxStage(r.demuxer, cfg.Tools.MkvMerge, cfg.Tools.MkvExtract, logging.NewComponentLogger(logger, "demux"))},
		{"rpu", newRPUStage(r.extractor, cfg.Tools.FFmpeg, cfg.Tools.DoviTool, logging.NewComponentLogger(logger, "rpu"))},
		{"ocr", newOCRStage(r.converter, cfg.Tools.OCRConverter, logging.NewComponentLogger(logger, "ocr"))},
		{"correct", newCorrectStage(cfg.Correction, store, logging.NewComponentLogger(logger, "correct"))},
		{"remux", newRemuxStage(r.remuxer, cfg.Tools.MkvMerge, logging.NewComponentLogger(logger, "remux"))},
	}
	return r
}

// WithCommandRunner injects a fake runner into every external tool.
func (r *Runner) WithCommandRunner(run tools.CommandRunner) {
	r.demuxer.WithCommandRunner(run)
	r.extractor.WithCommandRunner(run)
	r.converter.WithCommandRunner(run)
	r.remuxer.WithCommandRunner(run)
}

// NewJob builds the job record for a source path. The work directory is
// derived from the source basename so interrupted runs resume in place.
func (r *Runner) NewJob(sourcePath string) (*Job, error) {
	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(absSource), filepath.Ext(absSource))
	return &Job{
		ID:         uuid.NewString(),
		Source:     absSource,
		WorkDir:    filepath.Join(r.cfg.Paths.WorkDir, base),
		OutputPath: filepath.Join(r.cfg.Paths.OutputDir, filepath.Base(absSource)),
	}, nil
}

// Process runs every stage over sourcePath and returns the finished
// job. A lock file in the work directory guards against two processes
// working the same source.
func (r *Runner) Process(ctx context.Context, sourcePath string) (*Job, error) {
	job, err := r.NewJob(sourcePath)
	if err != nil {
		return nil, err
	}
	logger := r.logger.With(slog.String("job_id", job.ID), slog.String("source", job.Source))
	logger.Info("processing source")

	if err := os.MkdirAll(job.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	lock := flock.New(filepath.Join(job.WorkDir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire work lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("source %s is already being processed", job.Source)
	}
	defer func() { _ = lock.Unlock() }()

	for _, entry := range r.stages {
		if err := r.runStage(ctx, entry, job, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("processing complete",
		slog.String("output", job.OutputPath),
		slog.Int("corrected_tracks", job.CorrectedTracks),
		slog.Int("total_fixes", job.TotalFixes()))
	return job, nil
}

func (r *Runner) runStage(ctx context.Context, entry stageEntry, job *Job, logger *slog.Logger) error {
	stageCtx := ctx
	if timeout := r.cfg.Tools.TimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	start := time.Now()
	if err := entry.handler.Prepare(stageCtx, job); err != nil {
		return fmt.Errorf("prepare %s: %w", entry.name, err)
	}
	if err := entry.handler.Execute(stageCtx, job); err != nil {
		return fmt.Errorf("stage %s: %w", entry.name, err)
	}
	logger.Debug("stage complete",
		slog.String("stage", entry.name),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// HealthCheck reports readiness for every stage in pipeline order.
func (r *Runner) HealthCheck(ctx context.Context) []Health {
	results := make([]Health, 0, len(r.stages))
	for _, entry := range r.stages {
		results = append(results, entry.handler.HealthCheck(ctx))
	}
	return results
}
