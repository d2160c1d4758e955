package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Warn("warn message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below min level should be discarded, got: %s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message should be logged, got: %s", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("pass finished", Fields{"candidates": 42})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got %q", entry.Level)
	}
	if entry.Message != "pass finished" {
		t.Errorf("expected message 'pass finished', got %q", entry.Message)
	}
	if entry.Fields["candidates"] != float64(42) {
		t.Errorf("expected candidates field 42, got %v", entry.Fields["candidates"])
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Error("navigation failed", nil, errTest)

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Error != "test error" {
		t.Errorf("expected error field 'test error', got %q", entry.Error)
	}
}

type testError struct{}

func (testError) Error() string { return "test error" }

var errTest = testError{}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("scrape.passes")
	m.IncrCounter("scrape.passes")
	m.AddCounter("scrape.candidates", 40)

	counters, _, _ := m.Snapshot()
	if counters["scrape.passes"] != 2 {
		t.Errorf("expected counter 2, got %d", counters["scrape.passes"])
	}
	if counters["scrape.candidates"] != 40 {
		t.Errorf("expected counter 40, got %d", counters["scrape.candidates"])
	}
}

func TestMetricsTimings(t *testing.T) {
	m := NewMetrics()
	m.RecordTiming("scrape.duration", 2*time.Second)
	m.RecordTiming("scrape.duration", 4*time.Second)

	_, _, timings := m.Snapshot()
	stats := timings["scrape.duration"]
	if stats.Count != 2 {
		t.Errorf("expected 2 samples, got %d", stats.Count)
	}
	if stats.Min != 2*time.Second || stats.Max != 4*time.Second {
		t.Errorf("unexpected min/max: %v/%v", stats.Min, stats.Max)
	}
	if stats.Avg != 3*time.Second {
		t.Errorf("expected avg 3s, got %v", stats.Avg)
	}
}

func TestMetricsGauges(t *testing.T) {
	m := NewMetrics()
	m.SetGauge("tournaments.active", 17)

	_, gauges, _ := m.Snapshot()
	if gauges["tournaments.active"] != 17 {
		t.Errorf("expected gauge 17, got %v", gauges["tournaments.active"])
	}
}
