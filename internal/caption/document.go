package caption

// Document is the ordered caption sequence for one project. Ordinal position
// is not meaningful for rendering (events are time-addressed) but is stable
// for list display and editing focus. Identifiers are unique within a
// document; overlapping events are legal.
type Document struct {
	events []Event
}

func NewDocument() *Document {
	return &Document{}
}

// creates a document from an existing event sequence (e.g. a loaded
// project record or a history snapshot)
func NewDocumentFromEvents(events []Event) *Document {
	d := &Document{}
	d.Restore(events)
	return d
}

func (d *Document) Len() int {
	return len(d.events)
}

// Snapshot returns an independent copy of the event sequence. Event holds
// only value fields, so a slice copy is a deep copy.
func (d *Document) Snapshot() []Event {
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

// Restore replaces the event sequence with a copy of the given one,
// preserving identifiers. Used when navigating history.
func (d *Document) Restore(events []Event) {
	d.events = make([]Event, len(events))
	copy(d.events, events)
}

// ReplaceAll is the bulk load used after generation, translation, or import.
// Identifiers are minted only for newly produced events (empty ID); events
// carried over unmodified keep theirs so edit continuity with history
// survives the reload.
func (d *Document) ReplaceAll(events []Event) {
	d.events = make([]Event, len(events))
	copy(d.events, events)
	for i := range d.events {
		if d.events[i].ID == "" {
			d.events[i].ID = NewID()
		}
	}
}

// Apply merges one update command into the matching event. A command whose
// identifier is absent is a no-op, not an error: the UI may race an update
// against a concurrent delete.
func (d *Document) Apply(cmd Command) {
	for i := range d.events {
		if d.events[i].ID == cmd.targetID() {
			cmd.apply(&d.events[i])
			return
		}
	}
}

// Delete removes the event with the given identifier. Idempotent.
func (d *Document) Delete(id string) {
	for i := range d.events {
		if d.events[i].ID == id {
			d.events = append(d.events[:i], d.events[i+1:]...)
			return
		}
	}
}

// ActiveAt returns a copy of the event whose inclusive [Start, End] range
// contains t, or nil. When several events overlap at t the first by ordinal
// position wins; callers needing a different policy should use ActiveAllAt.
func (d *Document) ActiveAt(t float64) *Event {
	for i := range d.events {
		if d.events[i].Start <= t && t <= d.events[i].End {
			ev := d.events[i]
			return &ev
		}
	}
	return nil
}

// ActiveAllAt returns copies of every event whose range contains t, in
// ordinal order, for overlay rendering.
func (d *Document) ActiveAllAt(t float64) []Event {
	var out []Event
	for i := range d.events {
		if d.events[i].Start <= t && t <= d.events[i].End {
			out = append(out, d.events[i])
		}
	}
	return out
}

// ApplyGlobalOffset shifts every event by delta seconds, clamping start and
// end independently at zero. An event lying entirely before -delta is
// compressed toward zero length; that edge case is left uncorrected.
func (d *Document) ApplyGlobalOffset(delta float64) {
	for i := range d.events {
		d.events[i].Start = clampNonNegative(d.events[i].Start + delta)
		d.events[i].End = clampNonNegative(d.events[i].End + delta)
	}
}

// ApplyTranslation replaces the text of the event with the given identifier,
// capturing the pre-translation text into OriginalText the first time only.
// Absent identifiers are ignored (partial-failure tolerance).
func (d *Document) ApplyTranslation(id, translated string) {
	for i := range d.events {
		if d.events[i].ID == id {
			if d.events[i].OriginalText == "" {
				d.events[i].OriginalText = d.events[i].Text
			}
			d.events[i].Text = translated
			return
		}
	}
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
