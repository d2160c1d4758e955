package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tommie03/NTTBot/internal/tournament"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// previewLimit caps how many candidates test mode prints.
const previewLimit = 5

// Summary contains data to be output after a run
type Summary struct {
	CheckedAt time.Time                `json:"checked_at"`
	Mode      string                   `json:"mode"`
	Found     int                      `json:"found"`
	Inserted  int                      `json:"inserted,omitempty"`
	Retired   int64                    `json:"retired,omitempty"`
	Preview   []*tournament.Tournament `json:"preview,omitempty"`
}

// WriteSummary writes the summary in the specified format
func WriteSummary(w io.Writer, s *Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatText:
		return writeText(w, s)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, s *Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

func writeText(w io.Writer, s *Summary) error {
	switch s.Mode {
	case ModeSweep:
		fmt.Fprintf(w, "Retired %d record(s).\n", s.Retired)
		return nil
	case ModeScrape:
		if s.Found == 0 {
			fmt.Fprintln(w, "No tournaments found.")
			return nil
		}
		fmt.Fprintf(w, "Found %d tournament(s), %d new.\n", s.Found, s.Inserted)
		return nil
	}

	// test mode
	if s.Found == 0 {
		fmt.Fprintln(w, "No tournaments found.")
		return nil
	}
	fmt.Fprintf(w, "Found %d tournament(s):\n", s.Found)
	for _, t := range s.Preview {
		fmt.Fprintf(w, "  %s\n", t.Name)
		if t.StartDate != "" {
			if t.EndDate != "" && t.EndDate != t.StartDate {
				fmt.Fprintf(w, "    Date: %s t/m %s\n", t.StartDate, t.EndDate)
			} else {
				fmt.Fprintf(w, "    Date: %s\n", t.StartDate)
			}
		}
		if t.Location != "" {
			fmt.Fprintf(w, "    Location: %s\n", t.Location)
		}
		if len(t.Categories) > 0 {
			fmt.Fprintf(w, "    Categories: %s\n", strings.Join(t.Categories, ", "))
		}
		if t.RegistrationAvailable {
			fmt.Fprintf(w, "    Registration: open\n")
		} else if t.RegistrationStatus != "" {
			fmt.Fprintf(w, "    Registration: %s\n", t.RegistrationStatus)
		}
	}
	if s.Found > len(s.Preview) {
		fmt.Fprintf(w, "  ... and %d more\n", s.Found-len(s.Preview))
	}
	return nil
}
