package scraper

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Tommie03/NTTBot/internal/config"
	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

// Scraper runs one complete extraction pass: drive the browser, parse both
// tabs, and collapse in-pass duplicates. Persistence is the caller's
// concern.
type Scraper struct {
	cfg    config.Config
	driver *Driver
}

// New creates a Scraper with the given configuration.
func New(cfg config.Config) *Scraper {
	return &Scraper{cfg: cfg, driver: NewDriver(cfg)}
}

// Run executes a single pass and returns the deduplicated candidate set.
// A driver fault aborts the pass; a pass that completes with zero
// candidates preserves the raw page snapshot for offline diagnosis and is
// not an error.
func (s *Scraper) Run(ctx context.Context) ([]*tournament.Tournament, error) {
	start := time.Now()
	logger.Info("Starting scrape pass", logger.Fields{"url": s.cfg.BaseURL})

	snap, err := s.driver.CapturePage(ctx)
	if err != nil {
		logger.IncrCounter("scrape.driver_faults")
		return nil, err
	}

	now := time.Now().UTC()

	upcoming, err := Parse(strings.NewReader(snap.UpcomingHTML), tournament.TabUpcoming, s.cfg.BaseURL, now)
	if err != nil {
		return nil, err
	}

	recent, err := Parse(strings.NewReader(snap.RecentHTML), tournament.TabRecent, s.cfg.BaseURL, now)
	if err != nil {
		return nil, err
	}

	candidates := tournament.Dedupe(append(upcoming, recent...))

	logger.RecordTiming("scrape.duration", time.Since(start))
	logger.AddCounter("scrape.candidates", int64(len(candidates)))
	logger.Info("Scrape pass finished", logger.Fields{
		"upcoming":   len(upcoming),
		"recent":     len(recent),
		"candidates": len(candidates),
	})

	if len(candidates) == 0 {
		s.saveDebugSnapshot(snap)
	}

	return candidates, nil
}

// saveDebugSnapshot writes the raw rendered markup to disk so a pass that
// found nothing can be diagnosed offline.
func (s *Scraper) saveDebugSnapshot(snap *Snapshot) {
	if s.cfg.DebugSnapshotPath == "" {
		return
	}
	content := snap.UpcomingHTML
	if content == "" {
		content = snap.RecentHTML
	}
	if err := os.WriteFile(s.cfg.DebugSnapshotPath, []byte(content), 0644); err != nil {
		logger.Error("Failed to save debug snapshot", logger.Fields{"path": s.cfg.DebugSnapshotPath}, err)
		return
	}
	logger.Info("Saved debug snapshot", logger.Fields{"path": s.cfg.DebugSnapshotPath})
}
