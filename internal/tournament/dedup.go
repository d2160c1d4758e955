package tournament

import (
	"sort"
	"strings"
)

// dedupeKey is the case-insensitive identity a single pass collapses on.
type dedupeKey struct {
	name      string
	startDate string
	location  string
}

// Dedupe collapses candidates gathered across both tabs in one pass down
// to one record per distinct (name, start date, location) key, keeping the
// first-seen candidate for each key. Candidates without a name are
// dropped.
func Dedupe(candidates []*Tournament) []*Tournament {
	seen := make(map[dedupeKey]bool, len(candidates))
	unique := make([]*Tournament, 0, len(candidates))

	for _, c := range candidates {
		if c == nil || !c.Valid() {
			continue
		}
		key := dedupeKey{
			name:      normalize(c.Name),
			startDate: strings.TrimSpace(c.StartDate),
			location:  normalize(c.Location),
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}

	return unique
}

// SortSchedule orders tournaments by start date ascending with undated
// records last, ties broken by most recent ScrapedAt first.
func SortSchedule(ts []*Tournament) {
	sort.SliceStable(ts, func(i, j int) bool {
		di := ParseStartDate(ts[i].StartDate)
		dj := ParseStartDate(ts[j].StartDate)

		if di.IsZero() != dj.IsZero() {
			// Dated records come before undated ones.
			return !di.IsZero()
		}
		if !di.IsZero() && !di.Equal(dj) {
			return di.Before(dj)
		}
		return ts[i].ScrapedAt.After(ts[j].ScrapedAt)
	})
}
