package store

import (
	"testing"
	"time"

	"github.com/Tommie03/NTTBot/internal/config"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.Default()
	cfg.DatabasePath = ":memory:"
	cfg.PostgresDSN = ""

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeCandidate(name, startDate, location string, scrapedAt time.Time) *tournament.Tournament {
	return &tournament.Tournament{
		ID:               tournament.GenerateID(tournament.TabUpcoming, 0, scrapedAt) + "_" + name,
		Fingerprint:      tournament.Fingerprint(name, startDate, location),
		Name:             name,
		Location:         location,
		StartDate:        startDate,
		ExtractionMethod: tournament.ExtractionMethod,
		OriginTab:        tournament.TabUpcoming,
		ScrapedAt:        scrapedAt,
		Active:           true,
	}
}

func TestReconcileInsertsNewRecords(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	candidates := []*tournament.Tournament{
		makeCandidate("Nationale B Jeugd", "2026-03-14", "Rotterdam", now),
		makeCandidate("Open Zwolle", "2026-04-03", "Zwolle", now),
		makeCandidate("Tafeltennis Masters", "", "Den Haag", now),
	}

	inserted, err := s.Reconcile(candidates)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("expected 3 inserts, got %d", inserted)
	}
	if active := s.ListActive(); len(active) != 3 {
		t.Errorf("expected 3 active rows, got %d", len(active))
	}
}

func TestReconcileIdempotence(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	candidates := []*tournament.Tournament{
		makeCandidate("Nationale B Jeugd", "2026-03-14", "Rotterdam", now),
		makeCandidate("Open Zwolle", "2026-04-03", "Zwolle", now),
	}

	if _, err := s.Reconcile(candidates); err != nil {
		t.Fatalf("first Reconcile failed: %v", err)
	}
	first := s.ListActive()

	// A later pass observes the identical set with fresh row IDs.
	again := []*tournament.Tournament{
		makeCandidate("Nationale B Jeugd", "2026-03-14", "Rotterdam", now.Add(time.Hour)),
		makeCandidate("Open Zwolle", "2026-04-03", "Zwolle", now.Add(time.Hour)),
	}
	inserted, err := s.Reconcile(again)
	if err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected 0 inserts on identical set, got %d", inserted)
	}

	second := s.ListActive()
	if len(second) != len(first) {
		t.Fatalf("active row count drifted: %d -> %d", len(first), len(second))
	}
	for i := range second {
		if second[i].Fingerprint != first[i].Fingerprint {
			t.Errorf("fingerprint drifted at %d", i)
		}
		if second[i].ID != first[i].ID {
			t.Errorf("row identity not preserved for %q", second[i].Name)
		}
	}
}

func TestReconcileOverwritesMutableFields(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	original := makeCandidate("Open Zwolle", "2026-04-03", "Zwolle", now)
	original.RegistrationAvailable = false
	if _, err := s.Reconcile([]*tournament.Tournament{original}); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	// Same fingerprint, registration opened and categories appeared.
	updated := makeCandidate("Open Zwolle", "2026-04-03", "Zwolle", now.Add(24*time.Hour))
	updated.RegistrationAvailable = true
	updated.RegistrationURL = "https://nttb.toernooi.nl/register?id=X"
	updated.Categories = []string{"Senioren"}
	updated.Date = "vr 3 apr"

	if _, err := s.Reconcile([]*tournament.Tournament{updated}); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	active := s.ListActive()
	if len(active) != 1 {
		t.Fatalf("expected 1 active row, got %d", len(active))
	}

	row := active[0]
	if row.ID != original.ID {
		t.Errorf("update must preserve the original row id")
	}
	if !row.RegistrationAvailable {
		t.Error("registration availability not overwritten")
	}
	if len(row.Categories) != 1 || row.Categories[0] != "Senioren" {
		t.Errorf("categories not overwritten: %v", row.Categories)
	}
	if !row.ScrapedAt.After(original.ScrapedAt) {
		t.Error("ScrapedAt not refreshed")
	}
}

func TestReconcilePreservesInactiveHistory(t *testing.T) {
	s := newTestStore(t)

	old := time.Now().UTC().AddDate(0, 0, -30)
	stale := makeCandidate("Oud Toernooi", "", "Utrecht", old)
	if _, err := s.Reconcile([]*tournament.Tournament{stale}); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if _, err := s.Sweep(time.Now().UTC()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if active := s.ListActive(); len(active) != 0 {
		t.Fatalf("expected stale record retired, got %d active", len(active))
	}

	// The tournament reappears on the source: a fresh active row is
	// inserted, the retired row stays as history.
	fresh := makeCandidate("Oud Toernooi", "", "Utrecht", time.Now().UTC())
	inserted, err := s.Reconcile([]*tournament.Tournament{fresh})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("expected reappearance to insert a new row, got %d", inserted)
	}

	var total int64
	if err := s.db.Model(&tournament.Tournament{}).Count(&total).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 rows (1 retired, 1 active), got %d", total)
	}
}

func TestLogAttemptAppendOnly(t *testing.T) {
	s := newTestStore(t)

	if err := s.LogAttempt(12, StatusSuccess, ""); err != nil {
		t.Fatalf("LogAttempt failed: %v", err)
	}
	if err := s.LogAttempt(0, StatusError, "navigation timeout"); err != nil {
		t.Fatalf("LogAttempt failed: %v", err)
	}

	attempts, err := s.Attempts(10)
	if err != nil {
		t.Fatalf("Attempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	// Newest first.
	if attempts[0].Status != StatusError || attempts[0].ErrorMessage != "navigation timeout" {
		t.Errorf("unexpected newest attempt: %+v", attempts[0])
	}
	if attempts[1].Status != StatusSuccess || attempts[1].Found != 12 {
		t.Errorf("unexpected oldest attempt: %+v", attempts[1])
	}
}
