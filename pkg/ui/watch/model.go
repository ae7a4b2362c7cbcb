package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"framelink/pkg/bridge"
)

const feedLimit = 500

type eventMsg struct {
	event bridge.Event
}

type contextSummary struct {
	conversationID string
	status         string
	inbox          string
	contact        string
	agent          string
	team           string
	blocked        bool
}

type model struct {
	events  <-chan bridge.Event
	fetchFn func()

	theme    theme
	viewport viewport.Model
	lines    []string
	summary  contextSummary
	counts   map[bridge.EventType]int
	width    int
	height   int
	isReady  bool
}

func newModel(events <-chan bridge.Event, fetchFn func()) *model {
	vp := viewport.New(80, 16)

	return &model{
		events:   events,
		fetchFn:  fetchFn,
		theme:    defaultTheme(),
		viewport: vp,
		counts:   make(map[bridge.EventType]int),
		width:    100,
		height:   28,
	}
}

func waitForEvent(events <-chan bridge.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return eventMsg{event: event}
	}
}

func (m *model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.resizeViewport()
		m.isReady = true
		return m, nil

	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "f":
			if m.fetchFn != nil {
				m.fetchFn()
			}
			return m, nil
		}

	case eventMsg:
		m.apply(typed.event)
		return m, waitForEvent(m.events)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) apply(event bridge.Event) {
	m.counts[event.Type]++
	m.lines = append(m.lines, m.feedLine(event))
	if len(m.lines) > feedLimit {
		m.lines = m.lines[len(m.lines)-feedLimit:]
	}

	switch event.Type {
	case bridge.EventContextReady, bridge.EventContextUpdated:
		m.summary = summarize(event)
	case bridge.EventInboxBlocked:
		m.summary.blocked = true
	}

	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func summarize(event bridge.Event) contextSummary {
	summary := contextSummary{}
	bundle := event.Context
	if bundle == nil {
		return summary
	}

	if id, ok := bundle.Conversation.ID(); ok {
		summary.conversationID = fmt.Sprintf("%d", id)
	} else {
		summary.conversationID = "-"
	}
	if inbox, ok := bundle.Conversation.InboxID(); ok {
		summary.inbox = fmt.Sprintf("%d", inbox)
	} else {
		summary.inbox = "-"
	}
	summary.status = bundle.Conversation.Status()
	summary.contact = bundle.Contact.Name()
	summary.agent = bundle.Agent.Name()
	summary.team = bundle.Team.Name()
	return summary
}

func (m *model) feedLine(event bridge.Event) string {
	at := event.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	stamp := at.Format("15:04:05")

	switch event.Type {
	case bridge.EventContextReady:
		return fmt.Sprintf("%s %s", stamp, m.theme.feedReady.Render("contextReady"))
	case bridge.EventContextUpdated:
		return fmt.Sprintf("%s %s", stamp, m.theme.feedUpdated.Render("contextUpdated"))
	case bridge.EventInboxBlocked:
		detail := ""
		if event.Blocked != nil {
			detail = fmt.Sprintf(" inbox=%d allowed=%v", event.Blocked.InboxID, event.Blocked.AllowedIDs)
		}
		return fmt.Sprintf("%s %s%s", stamp, m.theme.feedBlocked.Render("inboxBlocked"), detail)
	case bridge.EventContextTimeout:
		return fmt.Sprintf("%s %s", stamp, m.theme.feedTimeout.Render("contextTimeout"))
	default:
		return fmt.Sprintf("%s %s", stamp, m.theme.feedRaw.Render("rawMessage"))
	}
}

func (m *model) resizeViewport() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	height := m.height - 10
	if height < 5 {
		height = 5
	}
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m *model) View() string {
	if !m.isReady {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.theme.header.Render(" framelink watch "))
	b.WriteString("\n")

	title := m.theme.contextTitle.Render(" current context ")
	if m.summary.blocked {
		title = m.theme.blockedTitle.Render(" blocked ")
	}
	contextBody := fmt.Sprintf(
		"conversation %s · inbox %s · %s\ncontact %s · agent %s · team %s",
		orDash(m.summary.conversationID), orDash(m.summary.inbox), orDash(m.summary.status),
		orDash(m.summary.contact), orDash(m.summary.agent), orDash(m.summary.team),
	)
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.theme.contextBox.Width(m.viewport.Width).Render(contextBody))
	b.WriteString("\n")

	b.WriteString(m.theme.feed.Width(m.viewport.Width).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.theme.hint.Render(fmt.Sprintf(
		"updates %d · blocked %d · raw %d | f fetch · q quit",
		m.counts[bridge.EventContextUpdated], m.counts[bridge.EventInboxBlocked], m.counts[bridge.EventRawMessage],
	)))
	return b.String()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
