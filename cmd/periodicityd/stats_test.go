package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xtaci/periodicityd/internal/engine"
)

func TestOccupancyCountsOverlappingProgressions(t *testing.T) {
	records := []*engine.Periodicity{
		{P: 2, O: 0},
		{P: 4, O: 0},
	}
	c := occupancy(records, 8)
	want := []int{2, 0, 1, 0, 2, 0, 1, 0}
	for i := range want {
		if c[i] != want[i] {
			t.Fatalf("occupancy[%d] = %d, want %d", i, c[i], want[i])
		}
	}
}

func TestWriteOccupancyStatsNoopOnEmptyPath(t *testing.T) {
	if err := writeOccupancyStats("", 60, []int{1, 2, 3}); err != nil {
		t.Fatalf("writeOccupancyStats(\"\") returned an error: %v", err)
	}
}

func TestWriteOccupancyStatsWritesAHeaderAndARow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.csv")

	if err := writeOccupancyStats(path, 30, []int{0, 1, 2, 3}); err != nil {
		t.Fatalf("writeOccupancyStats: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (header + one row)", len(records))
	}
	if records[0][0] != "Unix" {
		t.Fatalf("missing expected header, got %v", records[0])
	}
	if records[1][3] != "3" {
		t.Fatalf("MaxOccupancy = %s, want 3", records[1][3])
	}
}
