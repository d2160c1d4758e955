// Package calendar generates iCalendar (.ics) feeds for tournament records.
//
// Each tournament becomes one VEVENT identified by its fingerprint, so a
// re-imported feed updates rather than duplicates entries. Multi-day
// tournaments use their end date; undated tournaments are skipped because a
// calendar entry without a date is meaningless to subscribers.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tommie03/NTTBot/internal/tournament"
)

// GenerateFeed renders a complete VCALENDAR holding one VEVENT per dated
// tournament.
func GenerateFeed(tournaments []*tournament.Tournament, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//NTTB Tournaments//nttbot//NL\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, t := range tournaments {
		writeEvent(&ics, t, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// writeEvent appends one VEVENT. Tournaments without a parseable start
// date are skipped.
func writeEvent(ics *strings.Builder, t *tournament.Tournament, now time.Time) {
	start := tournament.ParseStartDate(t.StartDate)
	if start.IsZero() {
		return
	}

	// All-day span: a single-day tournament ends the next day per RFC 5545
	// non-inclusive DTEND semantics.
	end := start.AddDate(0, 0, 1)
	if e := tournament.ParseStartDate(t.EndDate); !e.IsZero() {
		end = e.AddDate(0, 0, 1)
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@nttb.toernooi.nl\r\n", t.Fingerprint))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", now.UTC().Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.Format("20060102")))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(t.Name)))

	var description []string
	if t.Date != "" {
		description = append(description, fmt.Sprintf("Datum: %s", t.Date))
	}
	if len(t.Categories) > 0 {
		description = append(description, fmt.Sprintf("Categorie: %s", strings.Join(t.Categories, ", ")))
	}
	if t.HasRegistration() && t.RegistrationURL != "" {
		description = append(description, fmt.Sprintf("Inschrijven: %s", t.RegistrationURL))
	}
	if len(description) > 0 {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(strings.Join(description, "\n"))))
	}

	if t.Location != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(t.Location)))
	}
	if t.TournamentURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", t.TournamentURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
