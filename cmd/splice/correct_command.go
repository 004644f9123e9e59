package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"splice/internal/fileutil"
	"splice/internal/journal"
	"splice/internal/language"
	"splice/internal/manifest"
	"splice/internal/srtfix"
)

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var showDiff bool
	var langs []string

	cmd := &cobra.Command{
		Use:   "correct <file.srt> [file.srt ...]",
		Short: "Correct OCR artifacts in SRT files in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var store *journal.Store
			if !dryRun {
				store, err = journal.Open(cfg.Paths.JournalDB)
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer store.Close()
			}

			dictionary := srtfix.MergeDictionaries(srtfix.DefaultDictionary(), cfg.Correction.Dictionary)
			engine := srtfix.NewEngine(srtfix.NewPipeline(srtfix.DefaultRules(dictionary)))
			jobID := uuid.NewString()

			out := cmd.OutOrStdout()
			totals := srtfix.Stats{}
			rows := make([][]string, 0, len(args))
			allowed := language.NormalizeList(langs)
			for _, path := range args {
				if len(allowed) > 0 && !trackLanguageAllowed(path, allowed) {
					rows = append(rows, []string{filepath.Base(path), "skipped", "0"})
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				report := engine.Correct(string(data))

				if showDiff && report.Changed {
					dmp := diffmatchpatch.New()
					diffs := dmp.DiffMain(report.Original, report.Corrected, false)
					fmt.Fprintf(out, "--- %s\n%s\n", path, dmp.DiffPrettyText(diffs))
				}
				if report.Changed && !dryRun {
					if err := fileutil.WriteFileAtomic(path, []byte(report.Corrected)); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
				}
				if store != nil {
					_, err := store.Record(cmd.Context(), journal.Entry{
						JobID:      jobID,
						Source:     path,
						TrackFile:  filepath.Base(path),
						Changed:    report.Changed,
						TotalFixes: report.Stats.Total(),
						Stats:      report.Stats,
					})
					if err != nil {
						return fmt.Errorf("journal %s: %w", path, err)
					}
				}

				changed := "no"
				if report.Changed {
					changed = "yes"
				}
				rows = append(rows, []string{
					filepath.Base(path),
					changed,
					strconv.Itoa(report.Stats.Total()),
				})
				totals.Merge(report.Stats)
			}

			fmt.Fprintln(out, renderTable([]string{"File", "Changed", "Fixes"}, rows, 2))
			if totals.Total() > 0 {
				fmt.Fprintln(out, renderTable([]string{"Category", "Count"}, statsRows(totals), 1))
			}
			if dryRun {
				fmt.Fprintln(out, "Dry run: no files were modified")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report corrections without writing files")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print a diff for every changed file")
	cmd.Flags().StringSliceVar(&langs, "lang", nil, "Only correct tracks matching these languages (requires a track manifest)")
	return cmd
}

// trackLanguageAllowed consults the track manifest next to path, when
// one exists, and reports whether the file's track language matches.
// Files without a manifest entry are always processed.
func trackLanguageAllowed(path string, allowed []string) bool {
	tracks, err := manifest.ReadFile(filepath.Join(filepath.Dir(path), "tracks.manifest"))
	if err != nil {
		return true
	}
	base := filepath.Base(path)
	for _, track := range tracks {
		if track.FileName != base {
			continue
		}
		for _, lang := range allowed {
			if language.Matches(track.Language, lang) {
				return true
			}
		}
		return false
	}
	return true
}

func statsRows(stats srtfix.Stats) [][]string {
	categories := make([]string, 0, len(stats))
	for category := range stats {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{category, strconv.Itoa(stats[category])})
	}
	return rows
}
