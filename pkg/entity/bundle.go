package entity

// Bundle groups the four views describing what the host is currently
// displaying. All fields are always non-nil on a normalized bundle.
type Bundle struct {
	Conversation *Conversation
	Contact      *Contact
	Agent        *Agent
	Team         *Team
}
