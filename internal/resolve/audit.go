package resolve

// Candidate is one fuzzy-match pair awaiting human confirmation before any
// promotion into the alias table.
type Candidate struct {
	Left      string
	Right     string
	LeftSlug  string
	RightSlug string
	Distance  int
}

// AuditLog collects fuzzy candidates for a batch run. It is created by the
// batch driver and passed explicitly into the resolver; there is no shared
// package-level state.
type AuditLog struct {
	entries []Candidate
	seen    map[string]struct{}
}

// NewAuditLog returns an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{seen: make(map[string]struct{})}
}

// Record adds a candidate pair, ignoring duplicates of a pair already seen
// in this run (in either order).
func (l *AuditLog) Record(c Candidate) {
	if l == nil {
		return
	}
	key := c.LeftSlug + "|" + c.RightSlug
	if c.RightSlug < c.LeftSlug {
		key = c.RightSlug + "|" + c.LeftSlug
	}
	if _, ok := l.seen[key]; ok {
		return
	}
	l.seen[key] = struct{}{}
	l.entries = append(l.entries, c)
}

// Candidates returns the recorded pairs in insertion order.
func (l *AuditLog) Candidates() []Candidate {
	if l == nil {
		return nil
	}
	return l.entries
}

// Len returns how many distinct pairs were recorded.
func (l *AuditLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
