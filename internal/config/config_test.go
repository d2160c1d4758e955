package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.BaseURL != "https://nttb.toernooi.nl" {
		t.Errorf("unexpected base URL: %q", cfg.BaseURL)
	}
	if cfg.StalenessDays != 14 {
		t.Errorf("expected staleness of 14 days, got %d", cfg.StalenessDays)
	}
	if cfg.GraceDays != 7 {
		t.Errorf("expected grace of 7 days, got %d", cfg.GraceDays)
	}
	if cfg.MaxScrolls != 5 {
		t.Errorf("expected 5 max scrolls, got %d", cfg.MaxScrolls)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "base_url: https://example.test\nstaleness_days: 21\nsettle_delay: 1s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://example.test" {
		t.Errorf("expected YAML base URL, got %q", cfg.BaseURL)
	}
	if cfg.StalenessDays != 21 {
		t.Errorf("expected 21 staleness days, got %d", cfg.StalenessDays)
	}
	if cfg.SettleDelay != time.Second {
		t.Errorf("expected 1s settle delay, got %v", cfg.SettleDelay)
	}
	// Values absent from the file keep defaults.
	if cfg.MaxScrolls != 5 {
		t.Errorf("expected default max scrolls, got %d", cfg.MaxScrolls)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: https://file.test\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("NTTB_BASE_URL", "https://env.test")
	t.Setenv("NTTB_STALENESS_DAYS", "30")
	t.Setenv("NTTB_SCRAPE_INTERVAL", "6h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://env.test" {
		t.Errorf("expected env override, got %q", cfg.BaseURL)
	}
	if cfg.StalenessDays != 30 {
		t.Errorf("expected env staleness, got %d", cfg.StalenessDays)
	}
	if cfg.ScrapeInterval != 6*time.Hour {
		t.Errorf("expected env interval, got %v", cfg.ScrapeInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadIgnoresBadEnvNumbers(t *testing.T) {
	t.Setenv("NTTB_STALENESS_DAYS", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StalenessDays != 14 {
		t.Errorf("expected default staleness, got %d", cfg.StalenessDays)
	}
}
