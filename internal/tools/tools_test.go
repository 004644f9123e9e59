package tools

import (
	"testing"

	"splice/internal/config"
)

func TestRequirementsFollowConfiguredNames(t *testing.T) {
	cfg := testToolsConfig()
	cfg.MkvMerge = "/opt/mkvtoolnix/bin/mkvmerge"
	reqs := Requirements(cfg)
	if len(reqs) != 5 {
		t.Fatalf("expected 5 requirements, got %d", len(reqs))
	}
	if reqs[0].Name != "mkvmerge" || reqs[0].Command != cfg.MkvMerge || reqs[0].Optional {
		t.Fatalf("mkvmerge requirement = %+v", reqs[0])
	}
	for _, req := range reqs[2:] {
		if !req.Optional {
			t.Fatalf("expected %s to be optional", req.Name)
		}
	}
}

func TestCheckBinaries(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "shell", Command: "sh", Description: "posix shell"},
		{Name: "missing", Command: "definitely-not-a-real-binary-xyz"},
		{Name: "unset", Command: "  ", Optional: true},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("sh should be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("missing binary status = %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("unset command status = %+v", statuses[2])
	}
	if !statuses[2].Optional {
		t.Fatal("optional flag should carry through")
	}
}

func TestRequirementsEmptyConfig(t *testing.T) {
	statuses := CheckBinaries(Requirements(config.Tools{}))
	for _, status := range statuses {
		if status.Available {
			t.Fatalf("no binaries configured but %s reported available", status.Name)
		}
	}
}
