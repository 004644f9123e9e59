package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"splice/internal/srtfix"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGetByID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry, err := store.Record(ctx, Entry{
		JobID:      "job-1",
		Source:     "/media/movie.mkv",
		TrackFile:  "movie.2.srt",
		Language:   "eng",
		Changed:    true,
		TotalFixes: 7,
		Stats:      srtfix.Stats{"i_fixes": 5, "ocr_patterns": 2},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected timestamp")
	}

	got, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Changed || got.TotalFixes != 7 || got.Language != "eng" {
		t.Fatalf("entry = %+v", got)
	}
	if got.Stats["i_fixes"] != 5 || got.Stats["ocr_patterns"] != 2 {
		t.Fatalf("stats = %v", got.Stats)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, file := range []string{"a.srt", "b.srt", "c.srt"} {
		if _, err := store.Record(ctx, Entry{JobID: "job-1", Source: "/media/x.mkv", TrackFile: file}); err != nil {
			t.Fatalf("Record %s: %v", file, err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].TrackFile != "c.srt" || entries[1].TrackFile != "b.srt" {
		t.Fatalf("order = %s, %s", entries[0].TrackFile, entries[1].TrackFile)
	}
}

func TestByJobFiltersAndOrdersOldestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, Entry{JobID: "job-1", TrackFile: "first.srt"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, Entry{JobID: "job-2", TrackFile: "other.srt"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, Entry{JobID: "job-1", TrackFile: "second.srt"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.ByJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("ByJob: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].TrackFile != "first.srt" || entries[1].TrackFile != "second.srt" {
		t.Fatalf("order = %s, %s", entries[0].TrackFile, entries[1].TrackFile)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(ctx, Entry{JobID: "job-1", TrackFile: "movie.2.srt"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].TrackFile != "movie.2.srt" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
