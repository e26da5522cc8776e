package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/boxdtools/boxdexport/internal/config"
	"github.com/boxdtools/boxdexport/internal/types"
)

func TestExportEmptyResultSetIsNoOp(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Export{Format: "csv", OutputPath: filepath.Join(dir, "out.csv")}

	path, err := Export(types.NewResultSet(), cfg, "testuser", testLogger)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty filename for no-op, got %q", path)
	}
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Error("no file should have been created")
	}
}

func TestExportWritesConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Export{Format: "csv", OutputPath: filepath.Join(dir, "films.csv")}

	rs := types.NewResultSet()
	for _, r := range sampleRecords() {
		rs.Add(r)
	}

	path, err := Export(rs, cfg, "testuser", testLogger)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != cfg.OutputPath {
		t.Errorf("expected %q, got %q", cfg.OutputPath, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestExportFailureIsWrapped(t *testing.T) {
	cfg := &config.Export{Format: "csv", OutputPath: filepath.Join(t.TempDir(), "x", "\x00", "out.csv")}

	rs := types.NewResultSet()
	rs.Add(sampleRecords()[0])

	if _, err := Export(rs, cfg, "testuser", testLogger); err == nil {
		t.Fatal("expected error for unwritable destination")
	}
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)

	got := DefaultFilename("someuser", "csv", now)
	want := "someuser_letterboxd_20240315_093005.csv"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	pattern := regexp.MustCompile(`^[^/]+_letterboxd_\d{8}_\d{6}\.jsonl$`)
	if got := DefaultFilename("u", "jsonl", time.Now()); !pattern.MatchString(got) {
		t.Errorf("unexpected filename shape: %q", got)
	}
}
