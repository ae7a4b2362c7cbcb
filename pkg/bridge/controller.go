// Package bridge hosts the context controller: the state machine between
// the host transport, the payload classifier, the inbox guard, and the
// subscriber registry.
package bridge

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"framelink/pkg/classify"
	"framelink/pkg/config"
	"framelink/pkg/entity"
	"framelink/pkg/guard"
)

// FetchSignal is the literal broadcast to the host to request the current
// context, sent with no recipient restriction.
const FetchSignal = "dashboard-app:fetch-info"

const defaultTimeout = 5 * time.Second

type registration struct {
	fn  Handler
	ptr uintptr
}

// Controller owns the current context state and the subscriber registry.
// All inbound processing is synchronous: one message is fully classified,
// checked, stored, and emitted before the next is handled.
type Controller struct {
	log       *slog.Logger
	transport Transport
	guard     *guard.Guard
	timeout   time.Duration
	debug     bool

	// sched is replaceable before Init for tests running a simulated clock.
	sched Scheduler

	mu           sync.Mutex
	handlers     map[EventType][]registration
	conversation *entity.Conversation
	contact      *entity.Contact
	agent        *entity.Agent
	team         *entity.Team
	everReceived bool
	blocked      bool
	initialized  bool
}

// NewController wires a controller to its transport. The allow-list and
// watchdog delay come from cfg; a zero timeout falls back to five seconds.
func NewController(cfg config.BridgeConfig, transport Transport, log *slog.Logger) (*Controller, error) {
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	if log == nil {
		log = slog.Default()
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Controller{
		log:       log.With("component", "bridge"),
		transport: transport,
		guard:     guard.New(cfg.AllowedInboxIDs, log),
		timeout:   timeout,
		debug:     cfg.Debug,
		sched:     systemScheduler{},
		handlers:  make(map[EventType][]registration),
	}, nil
}

// Init registers the inbound hook, requests context once, and arms the
// watchdog. Idempotent: the second and later calls are no-ops.
func (c *Controller) Init() {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		c.trace("Init called again, ignoring")
		return
	}
	c.initialized = true
	c.mu.Unlock()

	c.transport.OnMessage(c.handleMessage)
	c.FetchContext()
	c.sched.AfterFunc(c.timeout, c.watchdogFired)
}

// FetchContext re-issues the outbound context request. Callable at any
// time, independently of Init; the transport is fire-and-forget so there is
// no failure mode visible to the caller.
func (c *Controller) FetchContext() {
	if err := c.transport.Send(FetchSignal); err != nil {
		c.trace("Fetch signal failed", "error", err)
	}
}

// On appends a subscriber for the event. Registering the same handler
// twice stores it twice.
func (c *Controller) On(event EventType, fn Handler) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], registration{
		fn:  fn,
		ptr: reflect.ValueOf(fn).Pointer(),
	})
}

// Off removes every registration of the handler from the event. Identity is
// function-pointer equality, the closest Go gets to "same callback
// reference".
func (c *Controller) Off(event EventType, fn Handler) {
	if fn == nil {
		return
	}
	ptr := reflect.ValueOf(fn).Pointer()

	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.handlers[event]
	kept := make([]registration, 0, len(current))
	for _, reg := range current {
		if reg.ptr == ptr {
			continue
		}
		kept = append(kept, reg)
	}
	c.handlers[event] = kept
}

// Conversation returns the most recent allowed conversation, nil before the
// first allowed context.
func (c *Controller) Conversation() *entity.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversation
}

func (c *Controller) Contact() *entity.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contact
}

func (c *Controller) Agent() *entity.Agent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}

func (c *Controller) Team() *entity.Team {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.team
}

// HasContext reports whether any allowed context was ever received.
func (c *Controller) HasContext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.everReceived
}

// Blocked reports whether the most recent classified message was denied.
func (c *Controller) Blocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked
}

// handleMessage is the single inbound path. Every failure degrades to
// ignore-and-continue: the host channel is untrusted and best effort.
func (c *Controller) handleMessage(raw any) {
	c.emit(Event{Type: EventRawMessage, Raw: raw})

	msg, ok := classify.Decode(raw)
	if !ok {
		c.trace("Ignoring undecodable message")
		return
	}

	bundle, ok := classify.Normalize(msg)
	if !ok {
		// Unclassifiable noise does not touch state, the blocked flag
		// included.
		c.trace("Ignoring unrecognized payload shape")
		return
	}

	inboxID, present := bundle.Conversation.InboxID()
	verdict := c.guard.Check(inboxID, present)

	if !verdict.Allowed {
		c.mu.Lock()
		c.blocked = true
		c.mu.Unlock()

		c.trace("Context blocked by inbox policy", "inbox_id", verdict.InboxID)
		c.emit(Event{Type: EventInboxBlocked, Blocked: &BlockedInfo{
			InboxID:      verdict.InboxID,
			AllowedIDs:   c.guard.AllowedIDs(),
			Conversation: bundle.Conversation,
			Contact:      bundle.Contact,
			Agent:        bundle.Agent,
		}})
		return
	}

	c.mu.Lock()
	first := !c.everReceived
	c.everReceived = true
	c.blocked = false
	c.conversation = bundle.Conversation
	c.contact = bundle.Contact
	c.agent = bundle.Agent
	c.team = bundle.Team
	c.mu.Unlock()

	if first {
		c.emit(Event{Type: EventContextReady, Context: bundle})
	}
	c.emit(Event{Type: EventContextUpdated, Context: bundle})
}

// watchdogFired runs once per controller lifetime. The timer is never
// cancelled; it is made a no-op here instead. A denial inside the window
// counts as received for suppression purposes.
func (c *Controller) watchdogFired() {
	c.mu.Lock()
	fire := !c.everReceived && !c.blocked
	c.mu.Unlock()

	if !fire {
		return
	}
	c.trace("No context received before timeout", "timeout", c.timeout)
	c.emit(Event{Type: EventContextTimeout})
}

// emit invokes subscribers over a snapshot of the registry, so handlers may
// register or remove subscribers while an emission is in flight.
func (c *Controller) emit(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	c.mu.Lock()
	current := c.handlers[event.Type]
	snapshot := make([]Handler, len(current))
	for i, reg := range current {
		snapshot[i] = reg.fn
	}
	c.mu.Unlock()

	for _, fn := range snapshot {
		c.invoke(event, fn)
	}
}

// invoke isolates one subscriber: a panicking handler is reported and the
// remaining handlers still run.
func (c *Controller) invoke(event Event, fn Handler) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Subscriber failed", "event", string(event.Type), "panic", r)
		}
	}()
	fn(event)
}

func (c *Controller) trace(msg string, args ...any) {
	if !c.debug {
		return
	}
	c.log.Debug(msg, args...)
}
