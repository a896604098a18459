package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Language.Pivot != "en" {
		t.Errorf("expected pivot 'en', got %q", cfg.Language.Pivot)
	}
	if cfg.Language.Translator.Enabled {
		t.Error("expected translator disabled by default")
	}
	if cfg.Alerts.SentimentCritical != -0.7 {
		t.Errorf("expected sentiment threshold -0.7, got %g", cfg.Alerts.SentimentCritical)
	}
	if cfg.Alerts.IssueClusterMinFrequency != 5 {
		t.Errorf("expected cluster frequency 5, got %d", cfg.Alerts.IssueClusterMinFrequency)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected log level INFO, got %q", cfg.Logging.Level)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
language:
  pivot: de
alerts:
  sentiment_critical: -0.5
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Language.Pivot != "de" {
		t.Errorf("expected pivot 'de', got %q", cfg.Language.Pivot)
	}
	if cfg.Alerts.SentimentCritical != -0.5 {
		t.Errorf("expected sentiment threshold -0.5, got %g", cfg.Alerts.SentimentCritical)
	}
	// Unset fields keep their defaults.
	if cfg.Alerts.FoodQualityCritical != 2.0 {
		t.Errorf("expected food threshold 2.0, got %g", cfg.Alerts.FoodQualityCritical)
	}
	if cfg.Language.Translator.URL != "http://localhost:5000" {
		t.Errorf("expected default translator URL, got %q", cfg.Language.Translator.URL)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := parse([]byte("language: [not a map")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Logging.Level)
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := Default()
	cfg.Output.DataDir = "/tmp/carepulse-test"
	if got := cfg.GetDataDir(); got != "/tmp/carepulse-test" {
		t.Errorf("expected explicit data dir, got %q", got)
	}

	cfg.Output.DataDir = ""
	if got := cfg.GetDataDir(); got == "" {
		t.Error("expected non-empty default data dir")
	}
}

func TestResolveConfigPathExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, err := ResolveConfigPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != path {
		t.Errorf("expected %q, got %q", path, resolved)
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
