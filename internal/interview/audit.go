package interview

import "time"

// AuditEntry is one recorded policy decision or lifecycle event.
type AuditEntry struct {
	Timestamp time.Time
	Message   string
}

// AuditLog is a bounded append-only log. When full, appending drops the
// oldest entry. Implemented as a ring buffer so no slice truncation or
// reallocation happens on overflow.
type AuditLog struct {
	entries []AuditEntry
	head    int // index of the oldest entry
	size    int
}

// NewAuditLog creates a log bounded at cap entries.
func NewAuditLog(cap int) *AuditLog {
	if cap < 1 {
		cap = 1
	}
	return &AuditLog{entries: make([]AuditEntry, cap)}
}

// Append records an entry, evicting the oldest when at capacity.
func (l *AuditLog) Append(msg string) {
	e := AuditEntry{Timestamp: time.Now(), Message: msg}
	if l.size < len(l.entries) {
		l.entries[(l.head+l.size)%len(l.entries)] = e
		l.size++
		return
	}
	l.entries[l.head] = e
	l.head = (l.head + 1) % len(l.entries)
}

// Len returns the number of retained entries.
func (l *AuditLog) Len() int {
	return l.size
}

// Entries returns the retained entries oldest-first, as a copy.
func (l *AuditLog) Entries() []AuditEntry {
	out := make([]AuditEntry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.entries[(l.head+i)%len(l.entries)]
	}
	return out
}
