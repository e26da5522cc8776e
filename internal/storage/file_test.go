package storage

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/boxdtools/boxdexport/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func sampleRecords() []types.FilmRecord {
	return []types.FilmRecord{
		{
			MovieID:     "alpha",
			Username:    "testuser",
			MovieName:   "Alpha",
			Year:        "2001",
			Genres:      "Drama",
			Rating:      "3.5",
			Popularity:  "100",
			VoteAverage: "3.9",
			VoteCount:   "5000",
		},
		{
			MovieID:     "beta",
			Username:    "testuser",
			MovieName:   "Beta",
			Year:        types.NotAvailable,
			Genres:      types.NotAvailable,
			Rating:      types.NotRated,
			Popularity:  "0",
			VoteAverage: types.NotAvailable,
			VoteCount:   types.NotAvailable,
		},
	}
}

func TestCSVStorageWritesFixedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	s, err := NewCSVStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewCSVStorage: %v", err)
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{
		"movie_id", "username", "movie_name", "year", "genres",
		"rating", "popularity", "vote_average", "vote_count",
	}
	if len(rows[0]) != len(wantHeader) {
		t.Fatalf("expected %d columns, got %d", len(wantHeader), len(rows[0]))
	}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header column %d: expected %q, got %q", i, col, rows[0][i])
		}
	}

	if rows[1][0] != "alpha" || rows[1][5] != "3.5" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	// Defaulted fields still occupy their columns.
	if rows[2][3] != types.NotAvailable || rows[2][5] != types.NotRated {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestJSONStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	s, err := NewJSONStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewJSONStorage: %v", err)
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var got []types.FilmRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].MovieID != "alpha" || got[1].Rating != types.NotRated {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestJSONLStorageOneObjectPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	s, err := NewJSONLStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewJSONLStorage: %v", err)
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	var count int
	for dec.More() {
		var r types.FilmRecord
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode line %d: %v", count, err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 lines, got %d", count)
	}
}

func TestNewFileStorageUnknownFormat(t *testing.T) {
	if _, err := NewFileStorage("xml", filepath.Join(t.TempDir(), "o"), testLogger); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
