package bridge

import "time"

// Transport is the cross-frame messaging primitive the controller runs on.
// Implementations deliver inbound host messages to the registered hook and
// broadcast outbound signals; the controller never touches the wire itself.
type Transport interface {
	// Send broadcasts one outbound payload to the host. Fire-and-forget:
	// the controller treats failures as diagnostics only.
	Send(payload string) error

	// OnMessage registers the hook invoked once per inbound host message.
	// The hook receives the raw body: either an encoded string or an
	// already-structured value.
	OnMessage(fn func(raw any))
}

// Scheduler defers one-shot callbacks. The controller uses it for the
// context watchdog so tests can substitute a simulated clock.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
