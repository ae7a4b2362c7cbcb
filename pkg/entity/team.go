package entity

const defaultTeamName = "N/A"

// Team is a read-only view over a team fragment. It is constructed even when
// the conversation carries no team at all.
type Team struct {
	raw Fragment
}

func NewTeam(fragment Fragment) *Team {
	return &Team{raw: fragment}
}

func (t *Team) ID() (int64, bool) {
	return intValue(t.raw, "id")
}

func (t *Team) Name() string {
	return stringValue(t.raw, "name", defaultTeamName)
}

// Raw returns a deep, independently mutable copy of the backing fragment.
func (t *Team) Raw() Fragment {
	return cloneFragment(t.raw)
}
