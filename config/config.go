// Package config holds the per-run tunables: scoring thresholds,
// platform minimums and the domain keyword list. Values come from
// defaults, an optional YAML file, then environment variables, in that
// order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LinkCheckConfig selects and bounds the reachability checker.
type LinkCheckConfig struct {
	// Mode is "heuristic" (offline, default) or "live" (HTTP HEAD).
	Mode string `yaml:"mode"`
	// TimeoutSeconds bounds each live link check.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Config is the full run configuration.
type Config struct {
	// ReadyThreshold gates derivative artifact emission.
	ReadyThreshold float64 `yaml:"ready_threshold"`
	// PlatformMinimums overrides the per-destination score gates.
	PlatformMinimums map[string]float64 `yaml:"platform_minimums"`
	// DomainKeywords steer keyword ranking and title qualification.
	DomainKeywords []string `yaml:"domain_keywords"`
	// TitleMaxLen is the title character budget.
	TitleMaxLen int `yaml:"title_max_len"`
	// MinWordCount is the recommended publication floor.
	MinWordCount int `yaml:"min_word_count"`
	// Concurrency bounds parallel document processing.
	Concurrency int `yaml:"concurrency"`
	// OutputDir receives all artifacts.
	OutputDir string `yaml:"output_dir"`
	// DataDir holds run statistics.
	DataDir string `yaml:"data_dir"`
	// LinkCheck configures reachability checking.
	LinkCheck LinkCheckConfig `yaml:"link_check"`
	// LogMode is "development" or "production".
	LogMode string `yaml:"log_mode"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		ReadyThreshold: 85,
		PlatformMinimums: map[string]float64{
			"blog":       85,
			"twitter":    80,
			"linkedin":   85,
			"hackernews": 90,
			"medium":     85,
			"devto":      80,
		},
		DomainKeywords: nil, // metadata package supplies its defaults
		TitleMaxLen:    60,
		MinWordCount:   1000,
		Concurrency:    4,
		OutputDir:      "out",
		DataDir:        "data",
		LinkCheck:      LinkCheckConfig{Mode: "heuristic", TimeoutSeconds: 5},
		LogMode:        "development",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped
// when path is empty or missing), and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers PIPELINE_* environment variables over the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("PIPELINE_READY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ReadyThreshold = f
		}
	}
	if v := os.Getenv("PIPELINE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Concurrency = n
		}
	}
	if v := os.Getenv("PIPELINE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("PIPELINE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PIPELINE_LINK_CHECK_MODE"); v != "" {
		c.LinkCheck.Mode = v
	}
	if v := os.Getenv("PIPELINE_DOMAIN_KEYWORDS"); v != "" {
		var kws []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				kws = append(kws, k)
			}
		}
		c.DomainKeywords = kws
	}
	if v := os.Getenv("PIPELINE_LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("PIPELINE_MIN_WORD_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MinWordCount = n
		}
	}
}
