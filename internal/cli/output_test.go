package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Tommie03/NTTBot/internal/tournament"
)

func TestWriteSummaryTextScrape(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{CheckedAt: time.Now().UTC(), Mode: ModeScrape, Found: 4, Inserted: 2}

	if err := WriteSummary(&buf, s, FormatText); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if got := buf.String(); got != "Found 4 tournament(s), 2 new.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestWriteSummaryTextTestPreview(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{
		Mode:  ModeTest,
		Found: 7,
		Preview: []*tournament.Tournament{
			{
				Name:       "Nationale B Jeugd",
				StartDate:  "2026-03-14",
				Location:   "Rotterdam",
				Categories: []string{"Jeugd", "Klasse B"},
			},
		},
	}

	if err := WriteSummary(&buf, s, FormatText); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Found 7 tournament(s):",
		"Nationale B Jeugd",
		"Date: 2026-03-14",
		"Location: Rotterdam",
		"Categories: Jeugd, Klasse B",
		"... and 6 more",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{Mode: ModeSweep, Retired: 3}

	if err := WriteSummary(&buf, s, FormatJSON); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["mode"] != "sweep" {
		t.Errorf("mode = %v, want sweep", decoded["mode"])
	}
	if decoded["retired"] != float64(3) {
		t.Errorf("retired = %v, want 3", decoded["retired"])
	}
}

func TestWriteSummaryUnknownFormat(t *testing.T) {
	if err := WriteSummary(&bytes.Buffer{}, &Summary{}, OutputFormat("yaml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
