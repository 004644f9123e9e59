package main

import (
	"os"
	"path/filepath"
	"testing"
)

const brokenSRT = "1\n" +
	"00:00:01,000 --> 00:00:02,500\n" +
	"- l think it's fine.\n" +
	"\n" +
	"2\n" +
	"00:00:03,000 --> 00:00:04,000\n" +
	"Teh end is near.\n"

func writeBrokenSRT(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie.srt")
	if err := os.WriteFile(path, []byte(brokenSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	return path
}

func TestCorrectRewritesFile(t *testing.T) {
	configPath := writeTestConfig(t)
	srtPath := writeBrokenSRT(t)

	out, err := runCLI(t, configPath, "correct", srtPath)
	if err != nil {
		t.Fatalf("correct: %v", err)
	}
	requireContains(t, out, "movie.srt")
	requireContains(t, out, "yes")

	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	corrected := string(data)
	requireContains(t, corrected, "- I think it's fine.")
	requireContains(t, corrected, "The end is near.")
}

func TestCorrectDryRunLeavesFileAlone(t *testing.T) {
	configPath := writeTestConfig(t)
	srtPath := writeBrokenSRT(t)

	out, err := runCLI(t, configPath, "correct", "--dry-run", srtPath)
	if err != nil {
		t.Fatalf("correct --dry-run: %v", err)
	}
	requireContains(t, out, "Dry run: no files were modified")

	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if string(data) != brokenSRT {
		t.Fatalf("dry run modified the file:\n%s", data)
	}
}

func TestCorrectRecordsHistory(t *testing.T) {
	configPath := writeTestConfig(t)
	srtPath := writeBrokenSRT(t)

	if _, err := runCLI(t, configPath, "correct", srtPath); err != nil {
		t.Fatalf("correct: %v", err)
	}
	out, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "movie.srt")
}

func TestCorrectDiffOutput(t *testing.T) {
	configPath := writeTestConfig(t)
	srtPath := writeBrokenSRT(t)

	out, err := runCLI(t, configPath, "correct", "--dry-run", "--diff", srtPath)
	if err != nil {
		t.Fatalf("correct --diff: %v", err)
	}
	requireContains(t, out, "--- "+srtPath)
}

func TestCorrectMissingFile(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, err := runCLI(t, configPath, "correct", filepath.Join(t.TempDir(), "absent.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCorrectLangFilterSkipsOtherLanguages(t *testing.T) {
	configPath := writeTestConfig(t)
	dir := t.TempDir()
	srtPath := filepath.Join(dir, "movie.3.srt")
	if err := os.WriteFile(srtPath, []byte(brokenSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	manifestLine := "movie.3.srt|3|fre|subrip|0|\n"
	if err := os.WriteFile(filepath.Join(dir, "tracks.manifest"), []byte(manifestLine), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	out, err := runCLI(t, configPath, "correct", "--lang", "eng", srtPath)
	if err != nil {
		t.Fatalf("correct --lang: %v", err)
	}
	requireContains(t, out, "skipped")

	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if string(data) != brokenSRT {
		t.Fatalf("filtered track was modified:\n%s", data)
	}
}

func TestHistoryEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No corrections recorded yet")
}
