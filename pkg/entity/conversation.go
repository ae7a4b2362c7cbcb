package entity

const (
	defaultStatus  = "unknown"
	defaultChannel = "N/A"
)

// Conversation is a read-only view over a raw conversation fragment.
type Conversation struct {
	raw Fragment
}

// NewConversation wraps a conversation fragment. A nil or partial fragment
// is fine; accessors default instead of failing.
func NewConversation(fragment Fragment) *Conversation {
	return &Conversation{raw: fragment}
}

func (c *Conversation) ID() (int64, bool) {
	return intValue(c.raw, "id")
}

// Status reports the conversation lifecycle status, "unknown" when absent.
func (c *Conversation) Status() string {
	return stringValue(c.raw, "status", defaultStatus)
}

// InboxID reports the routing inbox, with presence. The guard needs the
// distinction between "inbox zero" and "no inbox at all".
func (c *Conversation) InboxID() (int64, bool) {
	return intValue(c.raw, "inbox_id")
}

func (c *Conversation) Channel() string {
	return stringValue(c.raw, "channel", defaultChannel)
}

// Messages returns the embedded message list, empty when absent.
func (c *Conversation) Messages() []any {
	messages := sliceValue(c.raw, "messages")
	if messages == nil {
		return []any{}
	}
	return messages
}

func (c *Conversation) AccountID() (int64, bool) {
	return intValue(c.raw, "account_id")
}

func (c *Conversation) UUID() string {
	return stringValue(c.raw, "uuid", "")
}

func (c *Conversation) Labels() []string {
	return stringSlice(c.raw, "labels")
}

func (c *Conversation) Priority() string {
	return stringValue(c.raw, "priority", "")
}

// SenderFragment exposes the embedded meta.sender fragment without taking
// ownership of it. Nil when the conversation carries none.
func (c *Conversation) SenderFragment() Fragment {
	return mapValue(c.raw, "meta", "sender")
}

// AssigneeFragment exposes the embedded meta.assignee fragment.
func (c *Conversation) AssigneeFragment() Fragment {
	return mapValue(c.raw, "meta", "assignee")
}

// TeamFragment exposes the embedded meta.team fragment.
func (c *Conversation) TeamFragment() Fragment {
	return mapValue(c.raw, "meta", "team")
}

// Raw returns a deep, independently mutable copy of the backing fragment.
func (c *Conversation) Raw() Fragment {
	return cloneFragment(c.raw)
}
