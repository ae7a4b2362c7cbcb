// Package panel is the visual diagnostics sink: a bounded, styled feed of
// the bridge's log entries, rendered for a terminal instead of a DOM node.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Entry is one captured diagnostic line.
type Entry struct {
	At      time.Time
	Level   slog.Level
	Message string
	Fields  map[string]any
}

// Panel keeps the most recent diagnostic entries, newest last. It is fed
// through an slog.Handler so any component logging through the shared
// logger shows up without knowing the panel exists.
type Panel struct {
	id  string
	max int

	mu      sync.Mutex
	entries []Entry

	theme theme
}

// New builds a panel identified by id, retaining at most maxEntries lines.
func New(id string, maxEntries int) *Panel {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Panel{id: id, max: maxEntries, theme: defaultTheme()}
}

// ID returns the configured panel identifier.
func (p *Panel) ID() string {
	return p.id
}

// Handler returns an slog.Handler that records every entry into the panel.
func (p *Panel) Handler() slog.Handler {
	return &captureHandler{panel: p}
}

// Log records one diagnostic directly, outside the slog pipeline.
func (p *Panel) Log(msg string, fields map[string]any) {
	p.append(Entry{At: time.Now().UTC(), Level: slog.LevelDebug, Message: msg, Fields: fields})
}

// Entries returns a copy of the retained entries, oldest first.
func (p *Panel) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	entries := make([]Entry, len(p.entries))
	copy(entries, p.entries)
	return entries
}

func (p *Panel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *Panel) append(entry Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
	if overflow := len(p.entries) - p.max; overflow > 0 {
		p.entries = append(p.entries[:0], p.entries[overflow:]...)
	}
}

// Render draws the panel as styled terminal text.
func (p *Panel) Render() string {
	entries := p.Entries()

	var b strings.Builder
	header := fmt.Sprintf(" %s · %d entries ", p.id, len(entries))
	b.WriteString(p.theme.header.Render(header))
	b.WriteString("\n")

	for _, entry := range entries {
		b.WriteString(p.theme.timestamp.Render(entry.At.Format("15:04:05.000")))
		b.WriteString(" ")
		b.WriteString(p.levelStyle(entry.Level).Render(levelTag(entry.Level)))
		b.WriteString(" ")
		b.WriteString(p.theme.message.Render(entry.Message))
		if len(entry.Fields) > 0 {
			b.WriteString(" ")
			b.WriteString(p.theme.fields.Render(formatFields(entry.Fields)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (p *Panel) levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return p.theme.levelError
	case level >= slog.LevelWarn:
		return p.theme.levelWarn
	case level >= slog.LevelInfo:
		return p.theme.levelInfo
	default:
		return p.theme.levelDebug
	}
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}

// formatFields renders the field bag deterministically, keys sorted.
func formatFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}
	return strings.Join(parts, " ")
}

// captureHandler funnels slog records into the shared panel. Attribute and
// group state lives on the handler so With-derived loggers stay cheap.
type captureHandler struct {
	panel  *Panel
	attrs  []slog.Attr
	groups []string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	entry := Entry{
		At:      record.Time.UTC(),
		Level:   record.Level,
		Message: record.Message,
	}
	if record.Time.IsZero() {
		entry.At = time.Now().UTC()
	}

	fields := make(map[string]any)
	for _, attr := range h.attrs {
		applyAttr(fields, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		applyAttr(fields, h.groups, attr)
		return true
	})
	if len(fields) > 0 {
		entry.Fields = fields
	}

	h.panel.append(entry)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func applyAttr(fields map[string]any, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(append(append([]string{}, groups...), attr.Key), ".")
	}
	fields[key] = attr.Value.Any()
}
