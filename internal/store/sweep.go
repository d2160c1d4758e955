package store

import (
	"fmt"
	"time"

	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

// Sweep deactivates records that are no longer relevant: not re-observed
// within the staleness window, or finished longer ago than the grace
// period (by end date, or by start date when no end date exists). Rows are
// marked inactive, never deleted, so history stays auditable. Returns the
// number of rows retired.
//
// The sweep runs independently of scrape passes. A record missing from a
// single pass is never retired here on that evidence alone; only elapsed
// time retires it.
func (s *Store) Sweep(now time.Time) (int64, error) {
	staleCutoff := now.AddDate(0, 0, -s.stalenessDays)
	graceCutoff := now.AddDate(0, 0, -s.graceDays).Format("2006-01-02")

	// ISO-8601 date strings compare correctly as text.
	res := s.db.Model(&tournament.Tournament{}).
		Where("is_active = ?", true).
		Where(
			s.db.Where("scraped_at < ?", staleCutoff).
				Or("end_date <> '' AND end_date < ?", graceCutoff).
				Or("end_date = '' AND start_date <> '' AND start_date < ?", graceCutoff),
		).
		Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("retention sweep: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		logger.Info("Retired stale tournaments", logger.Fields{"count": res.RowsAffected})
	}
	logger.SetGauge("sweep.retired", float64(res.RowsAffected))

	return res.RowsAffected, nil
}
