package bridge

import (
	"time"

	"framelink/pkg/entity"
)

// EventType names one controller lifecycle event.
type EventType string

const (
	// EventRawMessage fires for every inbound message body, untouched,
	// before any classification happens.
	EventRawMessage EventType = "rawMessage"

	// EventContextReady fires once, on the first allowed context.
	EventContextReady EventType = "contextReady"

	// EventContextUpdated fires on every allowed context, the first one
	// included.
	EventContextUpdated EventType = "contextUpdated"

	// EventInboxBlocked fires when the guard denies a classified message.
	EventInboxBlocked EventType = "inboxBlocked"

	// EventContextTimeout fires once if no context arrives in time.
	EventContextTimeout EventType = "contextTimeout"
)

// BlockedInfo describes one guard denial, including the rejected entities
// for diagnostic display.
type BlockedInfo struct {
	InboxID      int64
	AllowedIDs   []int64
	Conversation *entity.Conversation
	Contact      *entity.Contact
	Agent        *entity.Agent
}

// Event is the payload delivered to subscribers. Exactly one of Context,
// Blocked, Raw is set depending on Type; EventContextTimeout carries none.
type Event struct {
	Type    EventType
	At      time.Time
	Context *entity.Bundle
	Blocked *BlockedInfo
	Raw     any
}

// Handler consumes one controller event.
type Handler func(Event)
