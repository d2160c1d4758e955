// Package schedule orchestrates scrape passes and retention sweeps.
//
// A pass is one complete drive, extract, dedupe, persist cycle. Passes run
// sequentially on a coarse cadence; the retention sweep runs on its own
// independent schedule and is the only thing that retires records —
// a record missing from one pass is never treated as cancelled.
package schedule

import (
	"context"
	"time"

	"github.com/Tommie03/NTTBot/internal/config"
	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/store"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

// Fetcher produces one pass worth of deduplicated candidates.
type Fetcher interface {
	Run(ctx context.Context) ([]*tournament.Tournament, error)
}

// PassResult summarizes one completed scrape pass.
type PassResult struct {
	Found    int
	Inserted int
}

// Runner drives passes and sweeps against a store.
type Runner struct {
	cfg     config.Config
	fetcher Fetcher
	store   *store.Store
}

// NewRunner creates a runner.
func NewRunner(cfg config.Config, fetcher Fetcher, st *store.Store) *Runner {
	return &Runner{cfg: cfg, fetcher: fetcher, store: st}
}

// RunPass executes one scrape pass and appends exactly one scrape log row
// whatever the outcome. A driver fault or a store fault on the write path
// surfaces as an error; a pass that completes with zero records does not —
// absence of records is logged as a failed attempt and is a valid outcome.
func (r *Runner) RunPass(ctx context.Context) (*PassResult, error) {
	logger.IncrCounter("scrape.passes")

	candidates, err := r.fetcher.Run(ctx)
	if err != nil {
		if logErr := r.store.LogAttempt(0, store.StatusError, err.Error()); logErr != nil {
			logger.Error("Failed to log scrape attempt", nil, logErr)
		}
		return nil, err
	}

	if len(candidates) == 0 {
		if logErr := r.store.LogAttempt(0, store.StatusFailed, "no tournaments found"); logErr != nil {
			logger.Error("Failed to log scrape attempt", nil, logErr)
		}
		return &PassResult{}, nil
	}

	inserted, err := r.store.Reconcile(candidates)
	if err != nil {
		if logErr := r.store.LogAttempt(0, store.StatusError, err.Error()); logErr != nil {
			logger.Error("Failed to log scrape attempt", nil, logErr)
		}
		return nil, err
	}

	if err := r.store.LogAttempt(len(candidates), store.StatusSuccess, ""); err != nil {
		logger.Error("Failed to log scrape attempt", nil, err)
	}

	return &PassResult{Found: len(candidates), Inserted: inserted}, nil
}

// RunSweep executes one retention sweep.
func (r *Runner) RunSweep() (int64, error) {
	return r.store.Sweep(time.Now().UTC())
}

// Start runs a pass and a sweep immediately, then keeps both on their own
// tickers until the context is cancelled. Pass and sweep failures are
// logged and the loop continues; passes don't overlap because each tick is
// handled on this single goroutine.
func (r *Runner) Start(ctx context.Context) {
	r.tick(ctx)
	if _, err := r.RunSweep(); err != nil {
		logger.Error("Retention sweep failed", nil, err)
	}

	passTicker := time.NewTicker(r.cfg.ScrapeInterval)
	defer passTicker.Stop()
	sweepTicker := time.NewTicker(r.cfg.SweepInterval)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped", nil)
			return
		case <-passTicker.C:
			r.tick(ctx)
		case <-sweepTicker.C:
			if _, err := r.RunSweep(); err != nil {
				logger.Error("Retention sweep failed", nil, err)
			}
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	result, err := r.RunPass(ctx)
	if err != nil {
		logger.Error("Scrape pass failed", nil, err)
		return
	}
	logger.Info("Scheduled pass completed", logger.Fields{
		"found":    result.Found,
		"inserted": result.Inserted,
	})
}
