package entity

const defaultAgentName = "Not assigned"

// Agent is a read-only view over an assignee fragment.
type Agent struct {
	raw Fragment
}

func NewAgent(fragment Fragment) *Agent {
	return &Agent{raw: fragment}
}

func (a *Agent) ID() (int64, bool) {
	return intValue(a.raw, "id")
}

// Name prefers the display name, then the host's available_name, then the
// not-assigned default.
func (a *Agent) Name() string {
	if name := stringValue(a.raw, "name", ""); name != "" {
		return name
	}
	return stringValue(a.raw, "available_name", defaultAgentName)
}

func (a *Agent) Email() string {
	return stringValue(a.raw, "email", defaultEmail)
}

func (a *Agent) Role() string {
	return stringValue(a.raw, "role", "")
}

func (a *Agent) Thumbnail() string {
	return stringValue(a.raw, "thumbnail", "")
}

// Raw returns a deep, independently mutable copy of the backing fragment.
func (a *Agent) Raw() Fragment {
	return cloneFragment(a.raw)
}
