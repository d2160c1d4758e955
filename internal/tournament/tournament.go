package tournament

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Origin tabs on the source site. The same tournament can legitimately show
// up in both tabs near its boundary date.
const (
	TabUpcoming = "upcoming"
	TabRecent   = "recent"
)

// ExtractionMethod tags records with the parser version that produced them,
// for provenance when debugging old rows.
const ExtractionMethod = "nttb_scraper_v2"

// Tournament represents a single NTTB tournament observation.
//
// Fingerprint is the logical identity: two observations with the same
// fingerprint denote the same tournament and must merge rather than
// duplicate. ID is per-observation and only identifies the stored row.
type Tournament struct {
	ID                    string    `json:"id" gorm:"primaryKey;column:id"`
	Fingerprint           string    `json:"fingerprint" gorm:"column:hash;index"`
	SourceID              string    `json:"tournament_id,omitempty" gorm:"column:tournament_id"`
	Name                  string    `json:"name" gorm:"not null"`
	Location              string    `json:"location"`
	Date                  string    `json:"date"`
	StartDate             string    `json:"start_date,omitempty"`
	EndDate               string    `json:"end_date,omitempty"`
	Categories            []string  `json:"categories" gorm:"serializer:json"`
	RegistrationAvailable bool      `json:"registration_available"`
	RegistrationURL       string    `json:"registration_url,omitempty"`
	RegistrationDeadline  string    `json:"registration_deadline,omitempty"`
	RegistrationStatus    string    `json:"registration_status,omitempty"`
	TournamentURL         string    `json:"tournament_url,omitempty"`
	OriginTab             string    `json:"source" gorm:"column:source"`
	ExtractionMethod      string    `json:"extraction_method"`
	ScrapedAt             time.Time `json:"scraped_at"`
	Active                bool      `json:"is_active" gorm:"column:is_active"`
}

// TableName maps the model onto the tournaments table.
func (Tournament) TableName() string { return "tournaments" }

// Fingerprint creates a deterministic identity hash from the fields that
// define a real-world tournament. Name and location are compared
// case-insensitively with surrounding whitespace ignored, so cosmetic
// markup changes on the source don't fork a record's identity.
func Fingerprint(name, startDate, location string) string {
	h := sha1.New()
	h.Write([]byte(normalize(name) + "|" + strings.TrimSpace(startDate) + "|" + normalize(location)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// GenerateID creates a per-observation row identifier. Unlike the
// fingerprint it is not stable across passes.
func GenerateID(originTab string, index int, now time.Time) string {
	return fmt.Sprintf("tournament_%s_%d_%d", originTab, index, now.Unix())
}

// Valid reports whether a candidate carries enough data to persist.
// A missing name invalidates the candidate.
func (t *Tournament) Valid() bool {
	return strings.TrimSpace(t.Name) != ""
}

// HasRegistration reports whether the tournament currently accepts
// registrations. RegistrationAvailable is kept false whenever the status
// denotes a closed or full state, even if a registration link exists.
func (t *Tournament) HasRegistration() bool {
	return t.RegistrationAvailable && t.RegistrationStatus != StatusClosed
}

// StatusClosed is the registration status recorded when a registration
// link exists but its text marks it closed or full.
const StatusClosed = "closed"

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
