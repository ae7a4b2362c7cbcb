package watch

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"framelink/pkg/bridge"
)

const eventBuffer = 64

// Run subscribes to the controller's events and drives the live terminal
// view until the user quits or the context is cancelled.
func Run(ctx context.Context, ctrl *bridge.Controller) error {
	events := make(chan bridge.Event, eventBuffer)
	forward := func(event bridge.Event) {
		select {
		case events <- event:
		default:
			// Drop instead of blocking the controller on a slow UI.
		}
	}

	for _, eventType := range []bridge.EventType{
		bridge.EventRawMessage,
		bridge.EventContextReady,
		bridge.EventContextUpdated,
		bridge.EventInboxBlocked,
		bridge.EventContextTimeout,
	} {
		ctrl.On(eventType, forward)
	}

	program := tea.NewProgram(newModel(events, ctrl.FetchContext), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
