package entity

import (
	"reflect"
	"testing"
)

func TestConversationDefaults(t *testing.T) {
	conv := NewConversation(nil)

	if _, ok := conv.ID(); ok {
		t.Fatal("expected absent id")
	}
	if got := conv.Status(); got != "unknown" {
		t.Fatalf("status = %q, want %q", got, "unknown")
	}
	if got := conv.Channel(); got != "N/A" {
		t.Fatalf("channel = %q, want %q", got, "N/A")
	}
	if got := conv.Messages(); len(got) != 0 {
		t.Fatalf("messages = %v, want empty", got)
	}
	if _, ok := conv.InboxID(); ok {
		t.Fatal("expected absent inbox id")
	}
}

func TestConversationAccessors(t *testing.T) {
	conv := NewConversation(Fragment{
		"id":         float64(42),
		"status":     "open",
		"inbox_id":   float64(7),
		"channel":    "Channel::WebWidget",
		"account_id": float64(3),
		"uuid":       "d9c3-11",
		"labels":     []any{"vip", "billing"},
		"priority":   "high",
		"messages":   []any{map[string]any{"id": float64(1)}},
		"meta": map[string]any{
			"sender":   map[string]any{"name": "Ana"},
			"assignee": map[string]any{"name": "Bob"},
			"team":     map[string]any{"name": "Support"},
		},
	})

	if id, ok := conv.ID(); !ok || id != 42 {
		t.Fatalf("id = %d,%v, want 42,true", id, ok)
	}
	if inbox, ok := conv.InboxID(); !ok || inbox != 7 {
		t.Fatalf("inbox_id = %d,%v, want 7,true", inbox, ok)
	}
	if got := conv.Status(); got != "open" {
		t.Fatalf("status = %q", got)
	}
	if got := conv.Labels(); !reflect.DeepEqual(got, []string{"vip", "billing"}) {
		t.Fatalf("labels = %v", got)
	}
	if got := conv.Priority(); got != "high" {
		t.Fatalf("priority = %q", got)
	}
	if got := len(conv.Messages()); got != 1 {
		t.Fatalf("messages length = %d", got)
	}
	if got := conv.SenderFragment(); got["name"] != "Ana" {
		t.Fatalf("sender fragment = %v", got)
	}
	if got := conv.AssigneeFragment(); got["name"] != "Bob" {
		t.Fatalf("assignee fragment = %v", got)
	}
	if got := conv.TeamFragment(); got["name"] != "Support" {
		t.Fatalf("team fragment = %v", got)
	}
}

func TestConversationIntegerKindsAccepted(t *testing.T) {
	for name, value := range map[string]any{
		"float64": float64(9),
		"int":     int(9),
		"int64":   int64(9),
	} {
		conv := NewConversation(Fragment{"inbox_id": value})
		if inbox, ok := conv.InboxID(); !ok || inbox != 9 {
			t.Fatalf("%s: inbox_id = %d,%v, want 9,true", name, inbox, ok)
		}
	}
}

func TestContactDefaultsAreIndependent(t *testing.T) {
	contact := NewContact(Fragment{"email": "ana@example.com"})

	if got := contact.Name(); got != "No name" {
		t.Fatalf("name = %q, want default", got)
	}
	if got := contact.Email(); got != "ana@example.com" {
		t.Fatalf("email = %q", got)
	}
	if got := contact.CustomAttributes(); len(got) != 0 {
		t.Fatalf("custom attributes = %v, want empty", got)
	}
}

func TestAgentNameFallbackChain(t *testing.T) {
	cases := []struct {
		name     string
		fragment Fragment
		want     string
	}{
		{"display name wins", Fragment{"name": "Bob", "available_name": "Robert"}, "Bob"},
		{"available name second", Fragment{"available_name": "Robert"}, "Robert"},
		{"default last", Fragment{}, "Not assigned"},
		{"nil fragment", nil, "Not assigned"},
	}

	for _, tc := range cases {
		if got := NewAgent(tc.fragment).Name(); got != tc.want {
			t.Fatalf("%s: name = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTeamConstructedFromNothing(t *testing.T) {
	team := NewTeam(nil)

	if got := team.Name(); got != "N/A" {
		t.Fatalf("name = %q, want N/A", got)
	}
	if _, ok := team.ID(); ok {
		t.Fatal("expected absent id")
	}
}

func TestRawCloneIsMutationSafe(t *testing.T) {
	fragment := Fragment{
		"id":   float64(42),
		"meta": map[string]any{"sender": map[string]any{"name": "Ana"}},
	}
	conv := NewConversation(fragment)

	clone := conv.Raw()
	clone["id"] = float64(99)
	clone["meta"].(map[string]any)["sender"].(map[string]any)["name"] = "Eve"

	if id, _ := conv.ID(); id != 42 {
		t.Fatalf("view id changed to %d after clone mutation", id)
	}
	if got := conv.SenderFragment()["name"]; got != "Ana" {
		t.Fatalf("nested fragment changed to %v after clone mutation", got)
	}
}

func TestRawRoundTripReproducesAccessors(t *testing.T) {
	original := NewConversation(Fragment{
		"id":       float64(42),
		"status":   "open",
		"inbox_id": float64(7),
		"meta":     map[string]any{"sender": map[string]any{"name": "Ana"}},
	})

	rebuilt := NewConversation(original.Raw())

	origID, _ := original.ID()
	rebuiltID, _ := rebuilt.ID()
	if origID != rebuiltID || original.Status() != rebuilt.Status() || original.Channel() != rebuilt.Channel() {
		t.Fatal("round-tripped view disagrees with original")
	}
	if !reflect.DeepEqual(original.SenderFragment(), rebuilt.SenderFragment()) {
		t.Fatal("round-tripped sender fragment disagrees with original")
	}
}
