// Package classify turns raw host messages into normalized entity bundles.
//
// The host sends "current conversation" context in several structural
// layouts that grew over time. The classifier recognizes them in a fixed
// priority order and extracts the same canonical quad from each; anything
// unrecognized is rejected without side effects.
package classify

import (
	"encoding/json"

	"framelink/pkg/entity"
)

// EventAppContext marks the wrapper layout: the host envelopes the payload
// under {event: "appContext", data: ...}.
const EventAppContext = "appContext"

// Shape is the closed set of recognized payload layouts.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeWrapper
	ShapeKeyed
	ShapeFlat
)

func (s Shape) String() string {
	switch s {
	case ShapeWrapper:
		return "wrapper"
	case ShapeKeyed:
		return "keyed"
	case ShapeFlat:
		return "flat"
	default:
		return "unrecognized"
	}
}

// Real payloads have been observed wrapping themselves once; the cap only
// bounds hostile self-referential input.
const maxUnwrapDepth = 8

// Decode permissively interprets one inbound transport value. Textual input
// is parsed as JSON; already-structured objects pass through; everything
// else is rejected. Decode never panics on malformed input.
func Decode(raw any) (map[string]any, bool) {
	switch value := raw.(type) {
	case string:
		return decodeText([]byte(value))
	case []byte:
		return decodeText(value)
	case map[string]any:
		return value, true
	default:
		return nil, false
	}
}

func decodeText(data []byte) (map[string]any, bool) {
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, false
	}
	return decoded, true
}

// Detect reports which layout a structured message matches. First match
// wins; real-world payloads can satisfy more than one heuristic, so the
// order is part of the contract:
//
//  1. wrapper: an "appContext" event field plus a data field
//  2. keyed: a present conversation field
//  3. flat: the message itself is the conversation (id plus meta.sender)
func Detect(msg map[string]any) Shape {
	if msg == nil {
		return ShapeUnrecognized
	}

	if event, ok := msg["event"].(string); ok && event == EventAppContext {
		if _, ok := msg["data"]; ok {
			return ShapeWrapper
		}
	}

	if isPresent(msg["conversation"]) {
		return ShapeKeyed
	}

	if _, ok := msg["id"]; ok {
		if meta, ok := msg["meta"].(map[string]any); ok {
			if _, ok := meta["sender"]; ok {
				return ShapeFlat
			}
		}
	}

	return ShapeUnrecognized
}

// Normalize classifies one structured message and extracts the canonical
// entity quad. It returns false for unrecognized layouts and for matches
// whose conversation fragment turns out to be absent.
func Normalize(msg map[string]any) (*entity.Bundle, bool) {
	return normalize(msg, 0)
}

func normalize(msg map[string]any, depth int) (*entity.Bundle, bool) {
	if depth > maxUnwrapDepth {
		return nil, false
	}

	var conversation, contact, agent map[string]any

	switch Detect(msg) {
	case ShapeWrapper:
		inner, ok := Decode(msg["data"])
		if !ok {
			return nil, false
		}
		return normalize(inner, depth+1)

	case ShapeKeyed:
		conversation, _ = msg["conversation"].(map[string]any)
		contact, _ = msg["contact"].(map[string]any)
		agent, _ = msg["currentAgent"].(map[string]any)

	case ShapeFlat:
		conversation = msg

	default:
		return nil, false
	}

	// A shape match without a usable conversation is still a rejection.
	if conversation == nil {
		return nil, false
	}

	conv := entity.NewConversation(conversation)
	if contact == nil {
		contact = conv.SenderFragment()
	}
	if agent == nil {
		agent = conv.AssigneeFragment()
	}

	return &entity.Bundle{
		Conversation: conv,
		Contact:      entity.NewContact(contact),
		Agent:        entity.NewAgent(agent),
		Team:         entity.NewTeam(conv.TeamFragment()),
	}, true
}

// isPresent mirrors the loose presence test the host's own widgets apply:
// zero values and empty strings do not count as a carried field.
func isPresent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}
