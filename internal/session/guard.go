package session

// LimitGuard fires once when the completion counter first reaches a positive
// limit. After the user chooses to continue it stays silent for the rest of
// the session.
type LimitGuard struct {
	limit     int
	pending   bool
	dismissed bool
}

// NewLimitGuard returns a guard for limit. A limit of 0 disables it.
func NewLimitGuard(limit int) *LimitGuard {
	if limit < 0 {
		limit = 0
	}
	return &LimitGuard{limit: limit}
}

// Limit returns the configured limit.
func (g *LimitGuard) Limit() int { return g.limit }

// Check reports whether count has just reached the limit. A true result
// leaves the guard pending until Continue or Stop.
func (g *LimitGuard) Check(count int) bool {
	if g.limit <= 0 || g.dismissed || g.pending || count < g.limit {
		return false
	}
	g.pending = true
	return true
}

// Pending reports whether a stop/continue answer is outstanding.
func (g *LimitGuard) Pending() bool { return g.pending }

// Continue latches the guard off.
func (g *LimitGuard) Continue() {
	g.pending = false
	g.dismissed = true
}

// Stop clears the pending answer. The session ends, so the guard never fires
// again either.
func (g *LimitGuard) Stop() {
	g.pending = false
	g.dismissed = true
}
