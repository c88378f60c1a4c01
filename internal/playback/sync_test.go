package playback

import (
	"testing"

	"tala/internal/caption"
)

type fakePlayer struct {
	seeks []float64
}

func (p *fakePlayer) Seek(seconds float64) {
	p.seeks = append(p.seeks, seconds)
}

func newTestSync() (*Sync, *fakePlayer, *[]string) {
	doc := caption.NewDocumentFromEvents([]caption.Event{
		{ID: "a", Start: 1, End: 3, Text: "first"},
		{ID: "b", Start: 5, End: 7, Text: "second"},
	})

	player := &fakePlayer{}
	var fired []string

	sync := NewSync(doc, player, func(ev *caption.Event) {
		if ev == nil {
			fired = append(fired, "<none>")
			return
		}
		fired = append(fired, ev.ID)
	})

	return sync, player, &fired
}

func TestTickIsEdgeTriggered(t *testing.T) {
	sync, _, fired := newTestSync()

	sync.Tick(1.0)
	sync.Tick(1.1)
	sync.Tick(1.2)

	if len(*fired) != 1 || (*fired)[0] != "a" {
		t.Fatalf("expected single activation of a, got %v", *fired)
	}

	sync.Tick(4.0) // between events
	sync.Tick(4.1)

	if len(*fired) != 2 || (*fired)[1] != "<none>" {
		t.Fatalf("expected single deactivation, got %v", *fired)
	}

	sync.Tick(5.5)
	if len(*fired) != 3 || (*fired)[2] != "b" {
		t.Fatalf("expected activation of b, got %v", *fired)
	}
}

func TestSetTimeWithinToleranceDoesNotSeek(t *testing.T) {
	sync, player, _ := newTestSync()

	sync.Tick(2.0)
	sync.SetTime(2.15) // within 0.2s: natural progression

	if len(player.seeks) != 0 {
		t.Errorf("expected no corrective seek, got %v", player.seeks)
	}
	if sync.Position() != 2.15 {
		t.Errorf("position not updated: %v", sync.Position())
	}
}

func TestSetTimeBeyondToleranceSeeks(t *testing.T) {
	sync, player, _ := newTestSync()

	sync.Tick(2.0)
	sync.SetTime(6.0)

	if len(player.seeks) != 1 || player.seeks[0] != 6.0 {
		t.Fatalf("expected one seek to 6.0, got %v", player.seeks)
	}
}

func TestSeekSuppressesTicksUntilCompletion(t *testing.T) {
	sync, player, fired := newTestSync()

	sync.SeekTo(6.0)

	if len(player.seeks) != 1 {
		t.Fatalf("seek not pushed to player")
	}
	if len(*fired) != 1 || (*fired)[0] != "b" {
		t.Fatalf("expected activation of b on seek, got %v", *fired)
	}

	// the player's stale pre-seek tick must not drag the position back
	sync.Tick(2.0)
	if sync.Position() != 6.0 {
		t.Errorf("suppressed tick moved position to %v", sync.Position())
	}

	sync.SeekCompleted()
	sync.Tick(6.1)
	if sync.Position() != 6.1 {
		t.Errorf("tick after completion ignored: position %v", sync.Position())
	}
}

func TestSeekCompletionIsDeterministic(t *testing.T) {
	sync, player, _ := newTestSync()

	sync.SeekTo(5.5)
	sync.SeekCompleted()

	// a fresh explicit seek still works after the flag is cleared
	sync.SeekTo(1.5)
	if len(player.seeks) != 2 {
		t.Errorf("expected two seeks, got %v", player.seeks)
	}
}
