package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseJSONConfigSuccess(t *testing.T) {
	path := writeTempConfig(t, `{"dr":2,"alpha":0.8,"obs":"obs.json","out":"out.json","quiet":true}`)

	var cfg Config
	if err := parseJSONConfig(&cfg, path); err != nil {
		t.Fatalf("parseJSONConfig returned error: %v", err)
	}

	if cfg.DR != 2 || cfg.Alpha != 0.8 {
		t.Fatalf("unexpected dr/alpha: %+v", cfg)
	}
	if cfg.ObsPath != "obs.json" || cfg.OutPath != "out.json" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if !cfg.Quiet {
		t.Fatalf("expected quiet to be populated")
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	var cfg Config
	missing := filepath.Join(t.TempDir(), "missing.json")
	if err := parseJSONConfig(&cfg, missing); err == nil {
		t.Fatalf("parseJSONConfig expected error for missing file")
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
