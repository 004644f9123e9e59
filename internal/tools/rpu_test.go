package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/logging"
)

func TestRPUExtractorRunsBothSteps(t *testing.T) {
	workDir := t.TempDir()
	r := NewRPUExtractor(testToolsConfig(), logging.NewNop())

	var calls [][]string
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		// Pretend the tool wrote its output file.
		target := args[len(args)-1]
		if err := os.WriteFile(target, []byte("stream"), 0o644); err != nil {
			t.Fatalf("write fake output: %v", err)
		}
		return nil, nil
	})

	rpuPath, err := r.Extract(context.Background(), "/media/movie.mkv", workDir)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rpuPath != filepath.Join(workDir, "movie.rpu.bin") {
		t.Fatalf("unexpected rpu path %q", rpuPath)
	}
	if len(calls) != 2 {
		t.Fatalf("expected ffmpeg + dovi_tool, got %d calls", len(calls))
	}
	if calls[0][0] != "ffmpeg" || !strings.Contains(strings.Join(calls[0], " "), "hevc_mp4toannexb") {
		t.Fatalf("first call = %v", calls[0])
	}
	if calls[1][0] != "dovi_tool" || calls[1][1] != "extract-rpu" {
		t.Fatalf("second call = %v", calls[1])
	}
}

func TestRPUExtractorSkipsWhenAlreadyExtracted(t *testing.T) {
	workDir := t.TempDir()
	r := NewRPUExtractor(testToolsConfig(), logging.NewNop())
	if err := os.WriteFile(filepath.Join(workDir, "movie.rpu.bin"), []byte("rpu"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		t.Fatalf("unexpected command %s %v", name, args)
		return nil, nil
	})
	if _, err := r.Extract(context.Background(), "/media/movie.mkv", workDir); err != nil {
		t.Fatalf("Extract: %v", err)
	}
}

func TestRPUExtractorReusesIntermediateStream(t *testing.T) {
	workDir := t.TempDir()
	r := NewRPUExtractor(testToolsConfig(), logging.NewNop())
	if err := os.WriteFile(filepath.Join(workDir, "movie.hevc"), []byte("stream"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var calls [][]string
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return nil, nil
	})
	if _, err := r.Extract(context.Background(), "/media/movie.mkv", workDir); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(calls) != 1 || calls[0][0] != "dovi_tool" {
		t.Fatalf("expected only dovi_tool, got %v", calls)
	}
}

func TestRPUExtractorConfigured(t *testing.T) {
	cfg := testToolsConfig()
	if !NewRPUExtractor(cfg, logging.NewNop()).Configured() {
		t.Fatal("expected configured")
	}
	cfg.DoviTool = ""
	if NewRPUExtractor(cfg, logging.NewNop()).Configured() {
		t.Fatal("expected unconfigured without dovi_tool")
	}
}
