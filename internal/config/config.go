// Package config loads runtime configuration for the tournament pipeline.
//
// Settings are resolved in order of precedence: environment variables, an
// optional YAML config file, then built-in defaults. A .env file in the
// working directory is loaded into the environment first when present, so
// deployments can keep the database DSN out of the unit file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all tunables for the scraper, store, sweeper, and API.
type Config struct {
	// BaseURL is the single source site the driver navigates to.
	BaseURL string `yaml:"base_url"`

	// DatabasePath is the sqlite file used when PostgresDSN is empty.
	DatabasePath string `yaml:"database_path"`
	// PostgresDSN switches the store to PostgreSQL when set.
	PostgresDSN string `yaml:"postgres_dsn"`

	// NavigationTimeout bounds the initial page load.
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	// LocatorTimeout bounds each consent/tab locator strategy attempt.
	LocatorTimeout time.Duration `yaml:"locator_timeout"`
	// SettleDelay is the wait between scroll attempts for lazy content.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// MaxScrolls caps lazy-load scroll attempts per tab.
	MaxScrolls int `yaml:"max_scrolls"`

	// StalenessDays retires records not re-observed for this many days.
	StalenessDays int `yaml:"staleness_days"`
	// GraceDays is the post-end-date grace period before retirement.
	GraceDays int `yaml:"grace_days"`

	// ListenAddr is the HTTP API bind address for serve mode.
	ListenAddr string `yaml:"listen_addr"`
	// ScrapeInterval is the pass cadence in serve mode.
	ScrapeInterval time.Duration `yaml:"scrape_interval"`
	// SweepInterval is the retention sweep cadence in serve mode. The
	// sweep runs on its own schedule, independent of scrape passes.
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// DebugSnapshotPath is where a raw page snapshot is written when a
	// pass finds zero records.
	DebugSnapshotPath string `yaml:"debug_snapshot_path"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:           "https://nttb.toernooi.nl",
		DatabasePath:      "tournaments.db",
		NavigationTimeout: 30 * time.Second,
		LocatorTimeout:    3 * time.Second,
		SettleDelay:       2 * time.Second,
		MaxScrolls:        5,
		StalenessDays:     14,
		GraceDays:         7,
		ListenAddr:        ":8080",
		ScrapeInterval:    24 * time.Hour,
		SweepInterval:     12 * time.Hour,
		DebugSnapshotPath: "debug_page.html",
		LogLevel:          "INFO",
	}
}

// Load builds the effective configuration. path may be empty; when set it
// names a YAML file whose values overlay the defaults. Environment
// variables overlay both.
func Load(path string) (Config, error) {
	// Best effort: a missing .env file just means env comes from the system.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.MaxScrolls < 1 {
		cfg.MaxScrolls = 1
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.BaseURL = getenv("NTTB_BASE_URL", cfg.BaseURL)
	cfg.DatabasePath = getenv("NTTB_DB_PATH", cfg.DatabasePath)
	cfg.PostgresDSN = getenv("NTTB_POSTGRES_DSN", cfg.PostgresDSN)
	cfg.ListenAddr = getenv("NTTB_LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = getenv("NTTB_LOG_LEVEL", cfg.LogLevel)
	cfg.DebugSnapshotPath = getenv("NTTB_DEBUG_SNAPSHOT", cfg.DebugSnapshotPath)

	if v := os.Getenv("NTTB_STALENESS_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StalenessDays = n
		}
	}
	if v := os.Getenv("NTTB_SCRAPE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScrapeInterval = d
		}
	}
	if v := os.Getenv("NTTB_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SweepInterval = d
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
