package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"splice/internal/config"
	"splice/internal/fileutil"
	"splice/internal/logging"
	"splice/internal/manifest"
)

// Demuxer probes containers with mkvmerge and extracts subtitle tracks
// with mkvextract.
type Demuxer struct {
	mkvmerge   string
	mkvextract string
	run        CommandRunner
	logger     *slog.Logger
}

// NewDemuxer constructs a demuxer from the configured tool names.
func NewDemuxer(cfg config.Tools, logger *slog.Logger) *Demuxer {
	return &Demuxer{
		mkvmerge:   cfg.MkvMerge,
		mkvextract: cfg.MkvExtract,
		run:        DefaultRunner,
		logger:     logging.NewComponentLogger(logger, "demux"),
	}
}

// WithCommandRunner injects a custom runner for tests.
func (d *Demuxer) WithCommandRunner(r CommandRunner) {
	if d != nil && r != nil {
		d.run = r
	}
}

// mkvmerge -J output, reduced to the fields the demuxer reads.
type identifyOutput struct {
	Tracks []struct {
		ID         int    `json:"id"`
		Type       string `json:"type"`
		Codec      string `json:"codec"`
		Properties struct {
			CodecID     string `json:"codec_id"`
			Language    string `json:"language"`
			TrackName   string `json:"track_name"`
			ForcedTrack bool   `json:"forced_track"`
		} `json:"properties"`
	} `json:"tracks"`
}

// codecInfo maps Matroska subtitle codec IDs to manifest codec names and
// extraction extensions.
var codecInfo = map[string]struct {
	name string
	ext  string
}{
	"S_TEXT/UTF8":  {"subrip", ".srt"},
	"S_TEXT/ASS":   {"ass", ".ass"},
	"S_TEXT/SSA":   {"ssa", ".ssa"},
	"S_VOBSUB":     {"dvd_subtitle", ".idx"},
	"S_HDMV/PGS":   {"hdmv_pgs_subtitle", ".sup"},
	"D_WEBVTT/SUB": {"webvtt", ".vtt"},
}

// Identify probes mkvPath and returns one manifest track per subtitle
// stream. FileName is the name the track will extract to inside the work
// directory: "<base>.<id>.<ext>".
func (d *Demuxer) Identify(ctx context.Context, mkvPath string) ([]manifest.Track, error) {
	output, err := d.run(ctx, d.mkvmerge, "-J", mkvPath)
	if err != nil {
		return nil, fmt.Errorf("identify %s: %w", mkvPath, err)
	}
	var info identifyOutput
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("parse mkvmerge output for %s: %w", mkvPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(mkvPath), filepath.Ext(mkvPath))
	var tracks []manifest.Track
	for _, t := range info.Tracks {
		if t.Type != "subtitles" {
			continue
		}
		ci, ok := codecInfo[t.Properties.CodecID]
		if !ok {
			d.logger.Warn("skipping unsupported subtitle codec",
				slog.Int("track", t.ID), slog.String("codec", t.Properties.CodecID))
			continue
		}
		tracks = append(tracks, manifest.Track{
			FileName:   fmt.Sprintf("%s.%d%s", base, t.ID, ci.ext),
			TrackIndex: t.ID,
			Language:   strings.ToLower(strings.TrimSpace(t.Properties.Language)),
			Codec:      ci.name,
			Forced:     t.Properties.ForcedTrack,
			Title:      t.Properties.TrackName,
		})
	}
	return tracks, nil
}

// Extract pulls the given subtitle tracks out of mkvPath into workDir.
// Tracks whose output file already exists are skipped.
func (d *Demuxer) Extract(ctx context.Context, mkvPath, workDir string, tracks []manifest.Track) error {
	args := []string{"tracks", mkvPath}
	pending := 0
	for _, track := range tracks {
		dest := filepath.Join(workDir, track.FileName)
		if fileutil.NonEmpty(dest) {
			d.logger.Debug("track already extracted", slog.String("file", track.FileName))
			continue
		}
		args = append(args, fmt.Sprintf("%d:%s", track.TrackIndex, dest))
		pending++
	}
	if pending == 0 {
		return nil
	}
	if _, err := d.run(ctx, d.mkvextract, args...); err != nil {
		return fmt.Errorf("extract tracks from %s: %w", mkvPath, err)
	}
	d.logger.Info("extracted subtitle tracks", slog.Int("count", pending), slog.String("source", mkvPath))
	return nil
}
