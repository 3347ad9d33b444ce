package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Warn("warn message", nil)
	l.Error("error message", nil, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines above WARN, got %d: %q", len(lines), buf.String())
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry.Level != "ERROR" || entry.Error != "boom" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("fetched board", Fields{"event": "404377", "board": 7})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry.Fields["event"] != "404377" {
		t.Errorf("expected event field, got %+v", entry.Fields)
	}
}

func TestCounters(t *testing.T) {
	c := NewCounters()
	c.Incr("boards.fetched")
	c.Incr("boards.fetched")
	c.Add("boards.solved", 3)

	if got := c.Get("boards.fetched"); got != 2 {
		t.Errorf("boards.fetched = %d, want 2", got)
	}

	var buf bytes.Buffer
	c.Summary(&buf)
	want := "boards.fetched=2\nboards.solved=3\n"
	if buf.String() != want {
		t.Errorf("Summary = %q, want %q", buf.String(), want)
	}
}
