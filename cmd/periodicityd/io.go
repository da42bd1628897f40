package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/xtaci/periodicityd/internal/engine"
)

// loadObservation reads a JSON array of 0/1 ints from path and converts
// it to the []byte bit vector the engine operates on.
func loadObservation(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "loadObservation: open")
	}
	defer f.Close()

	var bits []int
	if err := json.NewDecoder(f).Decode(&bits); err != nil {
		return nil, errors.Wrap(err, "loadObservation: decode")
	}

	obs := make([]byte, len(bits))
	for i, b := range bits {
		if b != 0 {
			obs[i] = 1
		}
	}
	return obs, nil
}

// loadPopulation reads a JSON array of periodicity records from path.
// Records missing a uid are assigned a fresh one.
func loadPopulation(path string) ([]*engine.Periodicity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "loadPopulation: open")
	}
	defer f.Close()

	var records []*engine.Periodicity
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "loadPopulation: decode")
	}
	for _, r := range records {
		if r.UID == "" {
			r.UID = engine.NewUID()
		}
	}
	return records, nil
}

// writeJSONTo writes v as indented JSON to an open writer (typically
// os.Stdout, or a file writeJSONOut opened for us).
func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeJSONOut writes v as indented JSON to path, or to stdout when path
// is empty.
func writeJSONOut(path string, v any) error {
	if path == "" {
		return writeJSONTo(os.Stdout, v)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "writeJSONOut: create")
	}
	defer f.Close()
	return writeJSONTo(f, v)
}
