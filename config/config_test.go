package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.ReadyThreshold != 85 {
		t.Errorf("ready threshold = %.1f, want 85", cfg.ReadyThreshold)
	}
	if cfg.PlatformMinimums["hackernews"] != 90 {
		t.Errorf("hackernews minimum = %.1f, want 90", cfg.PlatformMinimums["hackernews"])
	}
	if cfg.LinkCheck.Mode != "heuristic" {
		t.Errorf("link check mode = %q, want heuristic", cfg.LinkCheck.Mode)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	yaml := `
ready_threshold: 90
concurrency: 8
domain_keywords:
  - rust
  - wasm
link_check:
  mode: live
  timeout_seconds: 2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReadyThreshold != 90 {
		t.Errorf("ready threshold = %.1f, want 90", cfg.ReadyThreshold)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("concurrency = %d, want 8", cfg.Concurrency)
	}
	if len(cfg.DomainKeywords) != 2 || cfg.DomainKeywords[0] != "rust" {
		t.Errorf("domain keywords = %v", cfg.DomainKeywords)
	}
	if cfg.LinkCheck.Mode != "live" || cfg.LinkCheck.TimeoutSeconds != 2 {
		t.Errorf("link check = %+v", cfg.LinkCheck)
	}
	// Values the file does not set keep their defaults.
	if cfg.MinWordCount != 1000 {
		t.Errorf("min word count = %d, want default 1000", cfg.MinWordCount)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReadyThreshold != 85 {
		t.Errorf("ready threshold = %.1f, want default", cfg.ReadyThreshold)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PIPELINE_READY_THRESHOLD", "70")
	t.Setenv("PIPELINE_CONCURRENCY", "2")
	t.Setenv("PIPELINE_DOMAIN_KEYWORDS", "go, grpc  ,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReadyThreshold != 70 {
		t.Errorf("ready threshold = %.1f, want 70", cfg.ReadyThreshold)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("concurrency = %d, want 2", cfg.Concurrency)
	}
	want := []string{"go", "grpc"}
	if len(cfg.DomainKeywords) != len(want) {
		t.Fatalf("domain keywords = %v", cfg.DomainKeywords)
	}
	for i := range want {
		if cfg.DomainKeywords[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, cfg.DomainKeywords[i], want[i])
		}
	}
}

func TestEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("PIPELINE_CONCURRENCY", "not-a-number")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("concurrency = %d, want default 4", cfg.Concurrency)
	}
}
