package history

import (
	"fmt"
	"testing"

	"tala/internal/caption"
)

func snap(text string) []caption.Event {
	return []caption.Event{{ID: "e", Start: 0, End: 1, Text: text}}
}

func TestCommitUndoCommitDiscardsRedoBranch(t *testing.T) {
	h := New(10)

	h.Commit(snap("A"))
	h.Commit(snap("B"))

	if _, ok := h.Undo(); !ok {
		t.Fatal("undo from B failed")
	}

	h.Commit(snap("C"))

	if h.Len() != 2 {
		t.Fatalf("expected history [A C], got %d entries", h.Len())
	}

	current, ok := h.Current()
	if !ok || current[0].Text != "C" {
		t.Errorf("expected current C, got %v", current)
	}

	// B is unrecoverable
	if _, ok := h.Redo(); ok {
		t.Error("redo recovered a discarded branch")
	}
}

func TestCommitDeduplicatesIdenticalSnapshots(t *testing.T) {
	h := New(10)

	h.Commit(snap("A"))
	h.Commit(snap("A"))

	if h.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate commit, got %d", h.Len())
	}
}

func TestUndoRedoBounds(t *testing.T) {
	h := New(10)

	if _, ok := h.Undo(); ok {
		t.Error("undo on empty history succeeded")
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo on empty history succeeded")
	}

	h.Commit(snap("A"))

	if _, ok := h.Undo(); ok {
		t.Error("undo at oldest entry succeeded")
	}

	h.Commit(snap("B"))

	events, ok := h.Undo()
	if !ok || events[0].Text != "A" {
		t.Errorf("undo should land on A, got %v", events)
	}

	events, ok = h.Redo()
	if !ok || events[0].Text != "B" {
		t.Errorf("redo should land on B, got %v", events)
	}

	if _, ok := h.Redo(); ok {
		t.Error("redo at newest entry succeeded")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New(3)

	for i := 0; i < 5; i++ {
		h.Commit(snap(fmt.Sprintf("v%d", i)))
	}

	if h.Len() != 3 {
		t.Fatalf("expected window of 3 snapshots, got %d", h.Len())
	}

	// walk back to the oldest surviving snapshot
	h.Undo()
	events, ok := h.Undo()
	if !ok || events[0].Text != "v2" {
		t.Errorf("expected oldest survivor v2, got %v", events)
	}

	if _, ok := h.Undo(); ok {
		t.Error("undo past the evicted window succeeded")
	}
}

func TestReturnedSnapshotIsACopy(t *testing.T) {
	h := New(10)
	h.Commit(snap("A"))
	h.Commit(snap("B"))

	events, _ := h.Undo()
	events[0].Text = "mutated"

	current, _ := h.Current()
	if current[0].Text != "A" {
		t.Error("mutating a returned snapshot corrupted history")
	}
}
