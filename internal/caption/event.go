package caption

import "github.com/google/uuid"

// Event is a single timed caption. Events are owned by the Document holding
// them; editor components hold only transient references while editing and
// never keep a competing copy of truth.
type Event struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds, always > Start
	Text  string  `json:"text"`

	// pre-translation snapshot, set on first translation and never overwritten
	OriginalText string `json:"originalText,omitempty"`

	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence,omitempty"` // 0..1
}

// NewID mints an identifier for a freshly produced event. Identifiers are
// stable across edits and undo/redo.
func NewID() string {
	return uuid.NewString()
}

// reports whether two event sequences are structurally identical
func EventsEqual(a, b []Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
