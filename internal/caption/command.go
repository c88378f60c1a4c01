package caption

// Command is one partial update to a single event. Updates are a closed set
// of commands rather than an open field merge so that illegal states (an end
// time set without validating against the start) are unrepresentable.
type Command interface {
	targetID() string
	apply(e *Event)
}

// SetText replaces the display text of an event.
type SetText struct {
	ID   string
	Text string
}

func (c SetText) targetID() string { return c.ID }

func (c SetText) apply(e *Event) {
	e.Text = c.Text
}

// SetTiming replaces both timestamps of an event. The command is a no-op
// unless 0 <= Start < End, so a half-edited time range never lands.
type SetTiming struct {
	ID    string
	Start float64
	End   float64
}

func (c SetTiming) targetID() string { return c.ID }

func (c SetTiming) apply(e *Event) {
	if c.Start < 0 || c.End <= c.Start {
		return
	}
	e.Start = c.Start
	e.End = c.End
}

// SetSpeaker replaces the speaker label of an event.
type SetSpeaker struct {
	ID      string
	Speaker string
}

func (c SetSpeaker) targetID() string { return c.ID }

func (c SetSpeaker) apply(e *Event) {
	e.Speaker = c.Speaker
}
