package t2048

// Entry is a snapshot of the state taken before a move attempt.
// Board is an array, so every Entry is an independent copy.
type Entry struct {
	Score int
	Board Board
	Moves int
	Won   bool
}

// History is a LIFO stack of pre-move snapshots.
type History struct {
	entries []Entry
	limit   int // 0 means unbounded
}

// NewHistory creates a history stack. A positive limit discards the
// oldest entries once exceeded; zero or less keeps every entry.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Push records a snapshot.
func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append(h.entries[:0], h.entries[drop:]...)
	}
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	last := len(h.entries) - 1
	e := h.entries[last]
	h.entries = h.entries[:last]
	return e, true
}

// Peek returns the most recent snapshot without removing it.
func (h *History) Peek() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the configured cap, 0 for unbounded.
func (h *History) Limit() int {
	return h.limit
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.entries = nil
}
