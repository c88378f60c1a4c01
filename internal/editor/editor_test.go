package editor

import (
	"testing"

	"tala/internal/caption"
	"tala/internal/project"
	"tala/internal/transcribe"
	"tala/internal/translate"
)

func loadTestEvents(e *Editor) {
	e.Load([]caption.Event{
		{ID: "a", Start: 0, End: 2, Text: "one"},
		{ID: "b", Start: 3, End: 5, Text: "two"},
	})
}

func TestCommitUndoRedoRestoresDraft(t *testing.T) {
	e := New()
	loadTestEvents(e)

	e.Document().Apply(caption.SetText{ID: "a", Text: "edited"})
	e.Commit()

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if got := e.Document().Snapshot()[0].Text; got != "one" {
		t.Errorf("undo left text %q, want %q", got, "one")
	}

	if !e.Redo() {
		t.Fatal("redo failed")
	}
	if got := e.Document().Snapshot()[0].Text; got != "edited" {
		t.Errorf("redo left text %q, want %q", got, "edited")
	}
}

func TestCommitWithoutChangeAddsNoEntry(t *testing.T) {
	e := New()
	loadTestEvents(e)

	e.Commit() // nothing changed since Load
	if e.Undo() {
		t.Error("no-change commit created an undoable entry")
	}
}

func TestStaleTranscriptionIsIgnored(t *testing.T) {
	e := New()
	epoch := e.Epoch()

	// project replaced while the request was in flight
	loadTestEvents(e)
	before := e.Document().Snapshot()

	applied := e.ApplyTranscription(epoch, []transcribe.Item{
		{Start: "00:00:00,000", End: "00:00:01,000", Text: "stale"},
	}, project.DefaultSettings())

	if applied {
		t.Error("stale transcription was applied")
	}
	if !caption.EventsEqual(before, e.Document().Snapshot()) {
		t.Error("stale transcription modified the document")
	}
}

func TestTranscriptionReplacesInterimEdits(t *testing.T) {
	e := New()
	loadTestEvents(e)
	epoch := e.Epoch()

	// the user edits while generation is outstanding; the landing result
	// still fully replaces the document (last-write-wins)
	e.Document().Apply(caption.SetText{ID: "a", Text: "interim edit"})
	e.Commit()

	applied := e.ApplyTranscription(epoch, []transcribe.Item{
		{Start: "00:00:00,000", End: "00:00:01,500", Text: "generated"},
	}, project.DefaultSettings())

	if !applied {
		t.Fatal("transcription was not applied")
	}

	events := e.Document().Snapshot()
	if len(events) != 1 || events[0].Text != "generated" {
		t.Errorf("document not replaced: %v", events)
	}
	if events[0].ID == "" {
		t.Error("generated event has no identifier")
	}
}

func TestTranslationPartialFailureTolerance(t *testing.T) {
	e := New()
	loadTestEvents(e)

	applied := e.ApplyTranslation(e.Epoch(), []translate.Item{
		{ID: "a", Text: "uno"},
		{ID: "missing", Text: "orphan"},
	})

	if !applied {
		t.Fatal("translation was not applied")
	}

	events := e.Document().Snapshot()
	if events[0].Text != "uno" || events[0].OriginalText != "one" {
		t.Errorf("translated event wrong: %+v", events[0])
	}
	// event b was absent from the response and keeps its prior text
	if events[1].Text != "two" || events[1].OriginalText != "" {
		t.Errorf("untranslated event changed: %+v", events[1])
	}
}

func TestStaleTranslationIsIgnored(t *testing.T) {
	e := New()
	loadTestEvents(e)
	epoch := e.Epoch()

	e.Close()

	if e.ApplyTranslation(epoch, []translate.Item{{ID: "a", Text: "late"}}) {
		t.Error("translation applied after the project was closed")
	}
}

func TestTranslationItemsMirrorDraft(t *testing.T) {
	e := New()
	loadTestEvents(e)

	items := e.TranslationItems()
	if len(items) != 2 || items[0].ID != "a" || items[1].Text != "two" {
		t.Errorf("unexpected payload: %v", items)
	}
}
