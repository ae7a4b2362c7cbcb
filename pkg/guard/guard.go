// Package guard decides whether a conversation's inbox may propagate its
// context into subscriber-visible state.
package guard

import "log/slog"

// Verdict is the outcome of one allow-list check.
type Verdict struct {
	Allowed bool
	InboxID int64
	Present bool
}

// Guard evaluates inbox identifiers against a fixed allow-list. A nil
// allow-list means the open policy: every inbox passes. The policy is
// immutable for the guard's lifetime.
type Guard struct {
	allowed map[int64]struct{}
	ids     []int64
	log     *slog.Logger
}

// New builds a guard from the configured allow-list. allowedIDs == nil (or
// empty) selects the open policy.
func New(allowedIDs []int64, log *slog.Logger) *Guard {
	if log == nil {
		log = slog.Default()
	}

	g := &Guard{log: log.With("component", "guard")}
	if len(allowedIDs) == 0 {
		return g
	}

	g.allowed = make(map[int64]struct{}, len(allowedIDs))
	g.ids = make([]int64, 0, len(allowedIDs))
	for _, id := range allowedIDs {
		if _, seen := g.allowed[id]; seen {
			continue
		}
		g.allowed[id] = struct{}{}
		g.ids = append(g.ids, id)
	}
	return g
}

// Open reports whether the guard runs without restriction.
func (g *Guard) Open() bool {
	return g.allowed == nil
}

// AllowedIDs returns a copy of the configured allow-list, nil for the open
// policy.
func (g *Guard) AllowedIDs() []int64 {
	if g.ids == nil {
		return nil
	}
	ids := make([]int64, len(g.ids))
	copy(ids, g.ids)
	return ids
}

// Check evaluates one inbox identifier. Priority order:
//
//  1. open policy: always allow
//  2. absent inbox id: allow; a restriction cannot be enforced against
//     missing data, so the guard fails open
//  3. otherwise allow iff the id is a member of the allow-list
//
// Check is pure in (policy, inboxID, present); identical inputs always yield
// identical verdicts.
func (g *Guard) Check(inboxID int64, present bool) Verdict {
	verdict := Verdict{InboxID: inboxID, Present: present}

	switch {
	case g.allowed == nil:
		verdict.Allowed = true
	case !present:
		verdict.Allowed = true
	default:
		_, verdict.Allowed = g.allowed[inboxID]
	}

	if !verdict.Allowed {
		g.log.Debug("Inbox denied by allow-list", "inbox_id", inboxID, "allowed_ids", g.ids)
	}
	return verdict
}
