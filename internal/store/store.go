package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Tommie03/NTTBot/internal/config"
	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

// Scrape attempt statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// ScrapeAttempt is one append-only row in the scrape log. Rows are never
// mutated after insert; the log exists for pipeline observability, not as
// a correctness dependency of other components.
type ScrapeAttempt struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ScrapedAt    time.Time `json:"scraped_at"`
	Found        int       `json:"tournaments_found" gorm:"column:tournaments_found"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// TableName maps the model onto the scrape_log table.
func (ScrapeAttempt) TableName() string { return "scrape_log" }

// Store wraps the relational database holding tournaments and the scrape
// log.
type Store struct {
	db            *gorm.DB
	stalenessDays int
	graceDays     int
}

// Open connects to the configured backend and migrates the schema. A
// PostgreSQL DSN takes precedence; otherwise the sqlite file at
// DatabasePath is created on demand.
func Open(cfg config.Config) (*Store, error) {
	var dialector gorm.Dialector
	if cfg.PostgresDSN != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(cfg.DatabasePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&tournament.Tournament{}, &ScrapeAttempt{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{
		db:            db,
		stalenessDays: cfg.StalenessDays,
		graceDays:     cfg.GraceDays,
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reconcile merges a deduplicated candidate set against stored state in
// one transaction. For each candidate: an existing active row with the
// same fingerprint has its mutable fields overwritten and ScrapedAt
// refreshed, preserving the row's original identity; otherwise a new row
// is inserted. Absence of a previously stored fingerprint in the
// candidate set is deliberately ignored — disappearance is the retention
// sweep's concern, not the reconciler's. Returns the number of newly
// inserted rows. Running twice with the same candidates is idempotent.
func (s *Store) Reconcile(candidates []*tournament.Tournament) (int, error) {
	inserted := 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range candidates {
			var existing tournament.Tournament
			err := tx.Where("hash = ? AND is_active = ?", c.Fingerprint, true).
				First(&existing).Error

			switch {
			case err == nil:
				if err := s.overwrite(tx, existing.ID, c); err != nil {
					return fmt.Errorf("updating %s: %w", c.Fingerprint, err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(c).Error; err != nil {
					return fmt.Errorf("inserting %s: %w", c.Fingerprint, err)
				}
				inserted++
			default:
				return fmt.Errorf("looking up %s: %w", c.Fingerprint, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Reconciled candidates", logger.Fields{
		"candidates": len(candidates),
		"inserted":   inserted,
	})
	return inserted, nil
}

// mutableColumns are the fields a fresh observation may overwrite on an
// existing active row. The row id and is_active flag are not among them.
var mutableColumns = []string{
	"name", "location", "date", "start_date", "end_date", "categories",
	"registration_available", "registration_url", "registration_deadline",
	"registration_status", "tournament_url", "tournament_id", "source",
	"extraction_method", "scraped_at",
}

func (s *Store) overwrite(tx *gorm.DB, rowID string, c *tournament.Tournament) error {
	return tx.Model(&tournament.Tournament{}).
		Where("id = ?", rowID).
		Select(mutableColumns).
		Updates(c).Error
}

// LogAttempt appends exactly one scrape log row. errMsg may be empty.
func (s *Store) LogAttempt(found int, status, errMsg string) error {
	attempt := &ScrapeAttempt{
		ScrapedAt:    time.Now().UTC(),
		Found:        found,
		Status:       status,
		ErrorMessage: errMsg,
	}
	if err := s.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("logging scrape attempt: %w", err)
	}
	return nil
}

// Attempts returns the most recent scrape log rows, newest first.
func (s *Store) Attempts(limit int) ([]*ScrapeAttempt, error) {
	var attempts []*ScrapeAttempt
	err := s.db.Order("id DESC").Limit(limit).Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("reading scrape log: %w", err)
	}
	return attempts, nil
}
