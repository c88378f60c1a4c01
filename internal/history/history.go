package history

import "tala/internal/caption"

// DefaultCapacity bounds the sliding window of snapshots.
const DefaultCapacity = 50

// History is a strictly linear undo stack of document snapshots. Each
// snapshot is an independent value copy of the event sequence at a commit
// point; the document visible to the user is always exactly the snapshot at
// the current index.
type History struct {
	snapshots [][]caption.Event
	index     int
	capacity  int
}

func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{index: -1, capacity: capacity}
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func (h *History) Index() int {
	return h.index
}

// Commit pushes a new snapshot: entries beyond the current index are
// discarded (no branching), the snapshot is appended, and the oldest entry
// is evicted once capacity is exceeded. A snapshot structurally identical to
// the current one is a no-op, so a blur event firing with no actual change
// cannot produce a duplicate entry.
func (h *History) Commit(events []caption.Event) {
	if h.index >= 0 && caption.EventsEqual(h.snapshots[h.index], events) {
		return
	}

	snapshot := make([]caption.Event, len(events))
	copy(snapshot, events)

	h.snapshots = append(h.snapshots[:h.index+1], snapshot)
	h.index = len(h.snapshots) - 1

	if len(h.snapshots) > h.capacity {
		h.snapshots = h.snapshots[1:]
		h.index--
	}
}

// Undo steps back one snapshot and returns a copy of the one now current.
// At the oldest entry it is a no-op and reports false.
func (h *History) Undo() ([]caption.Event, bool) {
	if h.index <= 0 {
		return nil, false
	}
	h.index--
	return h.current(), true
}

// Redo steps forward one snapshot and returns a copy of the one now current.
// At the newest entry it is a no-op and reports false.
func (h *History) Redo() ([]caption.Event, bool) {
	if h.index >= len(h.snapshots)-1 {
		return nil, false
	}
	h.index++
	return h.current(), true
}

// Current returns a copy of the snapshot at the current index.
func (h *History) Current() ([]caption.Event, bool) {
	if h.index < 0 {
		return nil, false
	}
	return h.current(), true
}

func (h *History) current() []caption.Event {
	out := make([]caption.Event, len(h.snapshots[h.index]))
	copy(out, h.snapshots[h.index])
	return out
}
