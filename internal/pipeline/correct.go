package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/journal"
	"splice/internal/manifest"
	"splice/internal/srtfix"
)

// correctStage runs the rule pipeline over every correctable text track
// and records the outcome in the journal.
type correctStage struct {
	cfg     config.Correction
	engine  *srtfix.Engine
	journal *journal.Store
	logger  *slog.Logger
}

func newCorrectStage(cfg config.Correction, store *journal.Store, logger *slog.Logger) *correctStage {
	dictionary := srtfix.MergeDictionaries(srtfix.DefaultDictionary(), cfg.Dictionary)
	return &correctStage{
		cfg:     cfg,
		engine:  srtfix.NewEngine(srtfix.NewPipeline(srtfix.DefaultRules(dictionary))),
		journal: store,
		logger:  logger,
	}
}

func (s *correctStage) Prepare(context.Context, *Job) error { return nil }

func (s *correctStage) Execute(ctx context.Context, job *Job) error {
	if !s.cfg.Enabled {
		s.logger.Debug("correction disabled, skipping")
		return nil
	}
	if job.Stats == nil {
		job.Stats = srtfix.Stats{}
	}

	for _, track := range manifest.Correctable(job.Tracks, s.cfg.Languages) {
		path := filepath.Join(job.WorkDir, track.FileName)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read track %s: %w", track.FileName, err)
		}

		report := s.engine.Correct(string(data))
		if report.Changed {
			if err := fileutil.WriteFileAtomic(path, []byte(report.Corrected)); err != nil {
				return fmt.Errorf("write corrected track %s: %w", track.FileName, err)
			}
			job.CorrectedTracks++
		}
		job.Stats.Merge(report.Stats)

		if s.journal != nil {
			_, err := s.journal.Record(ctx, journal.Entry{
				JobID:      job.ID,
				Source:     job.Source,
				TrackFile:  track.FileName,
				Language:   track.Language,
				Changed:    report.Changed,
				TotalFixes: report.Stats.Total(),
				Stats:      report.Stats,
			})
			if err != nil {
				return fmt.Errorf("journal track %s: %w", track.FileName, err)
			}
		}

		s.logger.Info("corrected track",
			slog.String("file", track.FileName),
			slog.Bool("changed", report.Changed),
			slog.Int("fixes", report.Stats.Total()))
	}
	return nil
}

func (s *correctStage) HealthCheck(context.Context) Health {
	if !s.cfg.Enabled {
		return Health{Name: "correct", Ready: true, Detail: "correction disabled"}
	}
	return Healthy("correct")
}
