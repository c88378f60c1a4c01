package playback

import "tala/internal/caption"

// DriftTolerance is how far (seconds) a reported position may differ from
// the last known position and still count as natural progression. It exists
// to avoid feedback loops between the displayed time and the player's own
// rounding.
const DriftTolerance = 0.2

// Player is the external media clock the engine reconciles against.
type Player interface {
	Seek(seconds float64)
}

// Sync bridges a continuously advancing playback clock and the caption
// document: it recomputes the active caption on each tick, pushes explicit
// seeks to the player, and suppresses tick feedback while a seek is in
// flight.
type Sync struct {
	doc      *caption.Document
	player   Player
	onActive func(*caption.Event)

	lastTime float64
	activeID string
	active   bool
	seeking  bool
}

// onActive fires whenever the active caption changes, including to none
// (nil). It never fires twice in a row for the same caption.
func NewSync(doc *caption.Document, player Player, onActive func(*caption.Event)) *Sync {
	return &Sync{doc: doc, player: player, onActive: onActive}
}

// Position returns the last known playback position.
func (s *Sync) Position() float64 {
	return s.lastTime
}

// Tick handles a natural clock update from the player. Ticks arriving while
// a seek is in flight are dropped to avoid oscillation; the seeking flag is
// cleared deterministically by SeekCompleted, not by a timeout.
func (s *Sync) Tick(t float64) {
	if s.seeking {
		return
	}
	s.lastTime = t
	s.updateActive(t)
}

// SetTime handles a position coming from the editing surface (a typed time
// field, a scrub). A value within DriftTolerance of the last known position
// is treated as natural progression; anything further triggers a corrective
// seek.
func (s *Sync) SetTime(t float64) {
	delta := t - s.lastTime
	if delta < 0 {
		delta = -delta
	}
	if delta <= DriftTolerance {
		s.Tick(t)
		return
	}
	s.SeekTo(t)
}

// SeekTo pushes an explicit seek to the player. Subsequent ticks are
// suppressed until the player reports completion via SeekCompleted.
func (s *Sync) SeekTo(t float64) {
	s.seeking = true
	s.lastTime = t
	s.updateActive(t)
	if s.player != nil {
		s.player.Seek(t)
	}
}

// SeekCompleted is the player's seek-completion notification.
func (s *Sync) SeekCompleted() {
	s.seeking = false
}

// edge-triggered: reports the active caption only when it changed
func (s *Sync) updateActive(t float64) {
	ev := s.doc.ActiveAt(t)

	if ev == nil {
		if s.active {
			s.active = false
			s.activeID = ""
			if s.onActive != nil {
				s.onActive(nil)
			}
		}
		return
	}

	if s.active && ev.ID == s.activeID {
		return
	}

	s.active = true
	s.activeID = ev.ID
	if s.onActive != nil {
		s.onActive(ev)
	}
}
