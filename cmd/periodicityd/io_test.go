package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadObservationConvertsIntsToBits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.json")
	if err := os.WriteFile(path, []byte(`[1,0,0,1,1,0]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	obs, err := loadObservation(path)
	if err != nil {
		t.Fatalf("loadObservation: %v", err)
	}
	want := []byte{1, 0, 0, 1, 1, 0}
	if !bytes.Equal(obs, want) {
		t.Fatalf("loadObservation = %v, want %v", obs, want)
	}
}

func TestLoadObservationMissingFile(t *testing.T) {
	if _, err := loadObservation(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadPopulationAssignsMissingUIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.json")
	body := `[{"p":100,"o":1,"uid":"has-one"},{"p":100,"o":2}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := loadPopulation(path)
	if err != nil {
		t.Fatalf("loadPopulation: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].UID != "has-one" {
		t.Fatalf("existing uid was overwritten: %q", records[0].UID)
	}
	if records[1].UID == "" {
		t.Fatalf("expected a minted uid for the record missing one")
	}
}

func TestWriteJSONOutWritesToFileWhenPathIsSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := writeJSONOut(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("writeJSONOut: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["a"] != 1 {
		t.Fatalf("got = %v, want a=1", got)
	}
}

func TestWriteJSONToWritesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSONTo(&buf, []int{1, 2, 3}); err != nil {
		t.Fatalf("writeJSONTo: %v", err)
	}
	var got []int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got = %v, want %v", got, want)
		}
	}
}
