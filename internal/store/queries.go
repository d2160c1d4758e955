package store

import (
	"strings"
	"time"

	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

// Stats aggregates counts over the active record set.
type Stats struct {
	Total            int `json:"total"`
	Upcoming30       int `json:"upcoming_30_days"`
	WithRegistration int `json:"with_registration"`
}

// activeSet fetches all active rows. Read faults degrade to an empty set:
// consumers must always get a safe response, and an empty store is not an
// error condition.
func (s *Store) activeSet() []*tournament.Tournament {
	var ts []*tournament.Tournament
	if err := s.db.Where("is_active = ?", true).Find(&ts).Error; err != nil {
		logger.Error("Failed to read active tournaments", nil, err)
		return []*tournament.Tournament{}
	}
	return ts
}

// ListActive returns all active tournaments ordered by start date
// ascending with undated records last, ties broken by most recent
// ScrapedAt.
func (s *Store) ListActive() []*tournament.Tournament {
	ts := s.activeSet()
	tournament.SortSchedule(ts)
	return ts
}

// ListUpcoming returns active tournaments starting within the next N
// days. Records with an absent or unparseable start date are included:
// an unknown date is possibly-upcoming, not evidence of the past.
func (s *Store) ListUpcoming(days int) []*tournament.Tournament {
	now := time.Now().UTC()

	upcoming := make([]*tournament.Tournament, 0)
	for _, t := range s.activeSet() {
		if t.IsWithinDays(now, days) {
			upcoming = append(upcoming, t)
		}
	}
	tournament.SortSchedule(upcoming)
	return upcoming
}

// Search returns active tournaments whose name or location contains the
// query, case-insensitively.
func (s *Store) Search(query string) []*tournament.Tournament {
	q := strings.ToLower(strings.TrimSpace(query))

	matches := make([]*tournament.Tournament, 0)
	for _, t := range s.activeSet() {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Location), q) {
			matches = append(matches, t)
		}
	}
	tournament.SortSchedule(matches)
	return matches
}

// GetStats aggregates counts over the active set.
func (s *Store) GetStats() Stats {
	active := s.ListActive()

	stats := Stats{Total: len(active)}
	now := time.Now().UTC()
	for _, t := range active {
		if t.IsWithinDays(now, 30) {
			stats.Upcoming30++
		}
		if t.RegistrationAvailable {
			stats.WithRegistration++
		}
	}
	return stats
}
