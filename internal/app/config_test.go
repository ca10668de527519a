package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Graph.MatchTimeout != 5*time.Second {
		t.Fatalf("MatchTimeout = %v", cfg.Graph.MatchTimeout)
	}
	if cfg.API.PageSize != 25 || cfg.API.PageWait != 2*time.Second {
		t.Fatalf("api = %+v", cfg.API)
	}
	if !cfg.Graph.MergeNames || cfg.Roster.MinYear != 1990 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lobbylinks.yaml")
	body := `
roster:
  current_path: fixtures/current.json
  min_year: 2000
graph:
  match_timeout: 250ms
  include_codes: [TAX, DEF]
log:
  file: run.log
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Roster.CurrentPath != "fixtures/current.json" || cfg.Roster.MinYear != 2000 {
		t.Fatalf("roster = %+v", cfg.Roster)
	}
	if cfg.Graph.MatchTimeout != 250*time.Millisecond {
		t.Fatalf("MatchTimeout = %v", cfg.Graph.MatchTimeout)
	}
	if len(cfg.Graph.IncludeCodes) != 2 || cfg.Graph.IncludeCodes[0] != "TAX" {
		t.Fatalf("IncludeCodes = %v", cfg.Graph.IncludeCodes)
	}
	if cfg.Log.File != "run.log" || cfg.Log.MaxSizeMB != 20 {
		t.Fatalf("log = %+v", cfg.Log)
	}
}

func TestLoadConfigMissingNamedFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a named config file that does not exist")
	}
}
