package panel

import (
	"log/slog"
	"strings"
	"testing"
)

func TestPanelCapturesSlogEntries(t *testing.T) {
	p := New("framelink-panel", 10)
	log := slog.New(p.Handler()).With("component", "bridge")

	log.Info("Context blocked by inbox policy", "inbox_id", 9)

	entries := p.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Message != "Context blocked by inbox policy" {
		t.Fatalf("message = %q", entries[0].Message)
	}
	if got := entries[0].Fields["component"]; got != "bridge" {
		t.Fatalf("component field = %v", got)
	}
	if got := entries[0].Fields["inbox_id"]; got != int64(9) {
		t.Fatalf("inbox_id field = %v", got)
	}
}

func TestPanelCapsRetainedEntries(t *testing.T) {
	p := New("framelink-panel", 3)
	log := slog.New(p.Handler())

	for i := 0; i < 10; i++ {
		log.Info("entry", "n", i)
	}

	if got := p.Len(); got != 3 {
		t.Fatalf("retained = %d, want 3", got)
	}
	entries := p.Entries()
	if got := entries[len(entries)-1].Fields["n"]; got != int64(9) {
		t.Fatalf("newest entry n = %v, want 9", got)
	}
	if got := entries[0].Fields["n"]; got != int64(7) {
		t.Fatalf("oldest retained n = %v, want 7", got)
	}
}

func TestPanelGroupsPrefixKeys(t *testing.T) {
	p := New("framelink-panel", 10)
	log := slog.New(p.Handler()).WithGroup("guard")

	log.Info("denied", "inbox_id", 9)

	entries := p.Entries()
	if got := entries[0].Fields["guard.inbox_id"]; got != int64(9) {
		t.Fatalf("grouped field = %v", entries[0].Fields)
	}
}

func TestPanelDirectLog(t *testing.T) {
	p := New("framelink-panel", 10)

	p.Log("fetch signal sent", map[string]any{"attempt": 1})

	if p.Len() != 1 {
		t.Fatalf("entries = %d, want 1", p.Len())
	}
}

func TestRenderContainsHeaderAndEntries(t *testing.T) {
	p := New("framelink-panel", 10)
	slog.New(p.Handler()).Warn("inbox denied", "inbox_id", 9)

	out := p.Render()
	if !strings.Contains(out, "framelink-panel") {
		t.Fatalf("render missing panel id: %q", out)
	}
	if !strings.Contains(out, "inbox denied") {
		t.Fatalf("render missing message: %q", out)
	}
	if !strings.Contains(out, "inbox_id=9") {
		t.Fatalf("render missing fields: %q", out)
	}
}
