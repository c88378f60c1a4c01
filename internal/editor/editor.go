// Package editor ties the caption document and history into a two-phase
// editing engine: the draft document is mutated freely, and Commit snapshots
// it into the linear history as a discrete checkpoint. All mutation happens
// on the caller's single logical thread; async generation and translation
// results re-enter through epoch-guarded apply calls.
package editor

import (
	"tala/internal/caption"
	"tala/internal/history"
	"tala/internal/project"
	"tala/internal/transcribe"
	"tala/internal/translate"
)

type Editor struct {
	draft   *caption.Document
	history *history.History
	epoch   int
}

func New() *Editor {
	e := &Editor{
		draft:   caption.NewDocument(),
		history: history.New(history.DefaultCapacity),
	}
	e.history.Commit(e.draft.Snapshot())
	return e
}

// Document is the draft being edited. Callers mutate it directly between
// commits.
func (e *Editor) Document() *caption.Document {
	return e.draft
}

// Epoch identifies the currently open document. An async result captured
// under an older epoch is stale and must be discarded on arrival.
func (e *Editor) Epoch() int {
	return e.epoch
}

// Load replaces the open document with a stored event sequence, resetting
// history. Outstanding async results for the previous document become stale.
func (e *Editor) Load(events []caption.Event) {
	e.epoch++
	e.draft = caption.NewDocumentFromEvents(events)
	e.history = history.New(history.DefaultCapacity)
	e.history.Commit(e.draft.Snapshot())
}

// Close discards the open document. Outstanding async results become stale.
func (e *Editor) Close() {
	e.Load(nil)
}

// Commit pushes the draft into history as a checkpoint. Committing an
// unchanged draft adds no entry.
func (e *Editor) Commit() {
	e.history.Commit(e.draft.Snapshot())
}

// Undo steps history back and restores the draft to the snapshot now
// current. Reports false at the oldest entry.
func (e *Editor) Undo() bool {
	events, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.draft.Restore(events)
	return true
}

// Redo steps history forward and restores the draft. Reports false at the
// newest entry.
func (e *Editor) Redo() bool {
	events, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.draft.Restore(events)
	return true
}

// ApplyTranscription lands an async generation result. The result fully
// replaces the document, interim edits included (last-write-wins), unless
// the epoch shows the document was closed or replaced while the request was
// in flight. Reports whether the result was applied.
func (e *Editor) ApplyTranscription(epoch int, items []transcribe.Item, settings project.Settings) bool {
	if epoch != e.epoch {
		return false
	}

	e.draft.ReplaceAll(caption.BuildEvents(items, caption.BuildOptions{
		MaxCharsPerLine: settings.MaxCharsPerLine,
		MinDuration:     settings.MinDuration,
		MaxDuration:     settings.MaxDuration,
	}))
	e.Commit()
	return true
}

// ApplyTranslation lands an async translation result, matching items back
// onto events by identifier. Events absent from the result keep their text;
// the pre-translation text is captured into OriginalText once. Reports
// whether the result was applied.
func (e *Editor) ApplyTranslation(epoch int, results []translate.Item) bool {
	if epoch != e.epoch {
		return false
	}

	for _, r := range results {
		e.draft.ApplyTranslation(r.ID, r.Text)
	}
	e.Commit()
	return true
}

// TranslationItems builds the translation request payload from the draft.
func (e *Editor) TranslationItems() []translate.Item {
	events := e.draft.Snapshot()
	items := make([]translate.Item, len(events))
	for i, ev := range events {
		items[i] = translate.Item{ID: ev.ID, Text: ev.Text}
	}
	return items
}
