package logx

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestDebugGating(t *testing.T) {
	SetDebug(false)
	defer SetDebug(false)

	logger := NewLogger("debug-gating-test")
	logger.Debug("suppressed %d", 1)

	entries := GetRecentLogEntries("debug-gating-test", time.Time{})
	if len(entries) != 0 {
		t.Fatalf("expected no entries with debug off, got %d", len(entries))
	}

	SetDebug(true)
	if !IsDebugEnabled() {
		t.Fatal("expected debug to be enabled")
	}
	logger.Debug("visible %d", 2)

	entries = GetRecentLogEntries("debug-gating-test", time.Time{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry with debug on, got %d", len(entries))
	}
	if entries[0].Level != string(LevelDebug) {
		t.Errorf("expected DEBUG level, got %s", entries[0].Level)
	}
	if entries[0].Message != "visible 2" {
		t.Errorf("unexpected message: %q", entries[0].Message)
	}
}

func TestBufferComponentFilter(t *testing.T) {
	a := NewLogger("filter-test-a")
	b := NewLogger("filter-test-b")
	a.Info("from a")
	b.Warn("from b")

	entries := GetRecentLogEntries("filter-test-a", time.Time{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for component a, got %d", len(entries))
	}
	if entries[0].Component != "filter-test-a" {
		t.Errorf("wrong component: %s", entries[0].Component)
	}

	// Component filter is case-insensitive.
	entries = GetRecentLogEntries("FILTER-TEST-B", time.Time{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for component b, got %d", len(entries))
	}
	if entries[0].Level != string(LevelWarn) {
		t.Errorf("expected WARN level, got %s", entries[0].Level)
	}
}

func TestBufferSinceFilter(t *testing.T) {
	logger := NewLogger("since-filter-test")
	logger.Info("old enough")

	entries := GetRecentLogEntries("since-filter-test", time.Now().UTC().Add(-time.Minute))
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry since a minute ago, got %d", len(entries))
	}

	entries = GetRecentLogEntries("since-filter-test", time.Now().UTC().Add(time.Hour))
	if len(entries) != 0 {
		t.Fatalf("expected 0 entries since an hour from now, got %d", len(entries))
	}
}

func TestBufferEviction(t *testing.T) {
	buf := &InMemoryLogBuffer{maxSize: 3}
	for i := 0; i < 5; i++ {
		buf.AddLogEntry(&LogEntry{
			Component: "eviction-test",
			Level:     string(LevelInfo),
			Message:   fmt.Sprintf("entry %d", i),
		})
	}

	entries := buf.GetLogEntries("eviction-test", time.Time{})
	if len(entries) != 3 {
		t.Fatalf("expected buffer capped at 3, got %d", len(entries))
	}
	if entries[0].Message != "entry 2" {
		t.Errorf("expected oldest surviving entry to be 'entry 2', got %q", entries[0].Message)
	}
}

func TestErrorfReturnsError(t *testing.T) {
	err := Errorf("widget %s broke", "a")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "widget a broke" {
		t.Errorf("unexpected error text: %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "noop") != nil {
		t.Fatal("wrapping nil should return nil")
	}

	base := errors.New("disk full")
	wrapped := Wrap(base, "save config")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the base error")
	}
	if !strings.HasPrefix(wrapped.Error(), "save config: ") {
		t.Errorf("unexpected wrapped text: %q", wrapped.Error())
	}
}

func TestWithComponent(t *testing.T) {
	base := NewLogger("with-component-base")
	derived := base.WithComponent("with-component-derived")
	if derived.GetComponent() != "with-component-derived" {
		t.Errorf("unexpected component: %s", derived.GetComponent())
	}
	if base.GetComponent() != "with-component-base" {
		t.Error("deriving a logger must not mutate the original")
	}
}
