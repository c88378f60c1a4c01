package caption

import (
	"strings"
	"testing"

	"tala/internal/transcribe"
)

func TestBuildEvents(t *testing.T) {
	items := []transcribe.Item{
		{Start: "00:00:01,000", End: "00:00:03,500", Speaker: "Alice", Text: "Hello there", Confidence: 0.95},
		{Start: "00:00:04,000", End: "00:00:06,000", Text: "  Short  "},
	}

	events := BuildEvents(items, BuildOptions{MaxCharsPerLine: 42})

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	if events[0].Start != 1 || events[0].End != 3.5 {
		t.Errorf("timecodes not parsed: [%v, %v]", events[0].Start, events[0].End)
	}
	if events[0].Speaker != "Alice" || events[0].Confidence != 0.95 {
		t.Errorf("speaker/confidence lost: %+v", events[0])
	}
	if events[0].ID == "" || events[1].ID == "" {
		t.Error("events missing fresh identifiers")
	}
	if events[0].ID == events[1].ID {
		t.Error("duplicate identifiers minted")
	}
	if events[1].Text != "Short" {
		t.Errorf("text not trimmed: %q", events[1].Text)
	}
}

func TestBuildEventsSkipsDegenerateItems(t *testing.T) {
	items := []transcribe.Item{
		{Start: "00:00:01,000", End: "00:00:02,000", Text: "   "},
		{Start: "00:00:05,000", End: "00:00:05,000", Text: "zero length"},
		{Start: "garbage", End: "also garbage", Text: "both snap to zero"},
		{Start: "00:00:07,000", End: "00:00:08,000", Text: "kept"},
	}

	events := BuildEvents(items, BuildOptions{MaxCharsPerLine: 42})

	if len(events) != 1 || events[0].Text != "kept" {
		t.Errorf("expected only the valid item, got %v", events)
	}
}

func TestBuildEventsWrapsLongText(t *testing.T) {
	long := "this line is definitely much too long to fit within the configured limit"
	items := []transcribe.Item{
		{Start: "00:00:00,000", End: "00:00:04,000", Text: long},
	}

	events := BuildEvents(items, BuildOptions{MaxCharsPerLine: 40})

	lines := strings.Split(events[0].Text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), events[0].Text)
	}
	for _, line := range lines {
		if len(line) == 0 {
			t.Error("empty wrapped line")
		}
	}
	if strings.Join(lines, " ") != long {
		t.Errorf("wrapping lost words: %q", events[0].Text)
	}
}

func TestBuildEventsSplitsOverlongDuration(t *testing.T) {
	items := []transcribe.Item{
		{Start: "00:00:00,000", End: "00:00:20,000", Text: "one two three four five six"},
	}

	events := BuildEvents(items, BuildOptions{MaxCharsPerLine: 42, MaxDuration: 7})

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Start != 0 {
		t.Errorf("first split should start at the original start, got %v", events[0].Start)
	}
	if events[2].End != 20 {
		t.Errorf("last split should end at the original end, got %v", events[2].End)
	}

	var rejoined []string
	for i, ev := range events {
		if ev.End-ev.Start > 7+1e-9 {
			t.Errorf("split %d still exceeds the duration limit: [%v, %v]", i, ev.Start, ev.End)
		}
		if i > 0 && ev.Start != events[i-1].End {
			t.Errorf("split %d not contiguous: starts at %v, previous ends at %v",
				i, ev.Start, events[i-1].End)
		}
		rejoined = append(rejoined, ev.Text)
	}
	if strings.Join(rejoined, " ") != items[0].Text {
		t.Errorf("splitting lost or reordered words: %q", rejoined)
	}
}

func TestBuildEventsSplitsOverlongText(t *testing.T) {
	items := []transcribe.Item{
		{Start: "00:00:00,000", End: "00:00:06,000", Text: "aaaa bbbb cccc dddd eeee ffff gggg hhhh iiii"},
	}

	events := BuildEvents(items, BuildOptions{MaxCharsPerLine: 10})

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, ev := range events {
		for _, line := range strings.Split(ev.Text, "\n") {
			if len(line) > 10 {
				t.Errorf("split %d line exceeds limit: %q", i, line)
			}
		}
	}
	if events[2].End != 6 {
		t.Errorf("last split should end at the original end, got %v", events[2].End)
	}
}

func TestBuildEventsExtendsShortEvent(t *testing.T) {
	items := []transcribe.Item{
		{Start: "00:00:01,000", End: "00:00:01,200", Text: "blink"},
		{Start: "00:00:03,000", End: "00:00:05,000", Text: "long enough"},
	}

	events := BuildEvents(items, BuildOptions{MaxCharsPerLine: 42, MinDuration: 1})

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].End != 2 {
		t.Errorf("short event not extended to the minimum duration: end %v", events[0].End)
	}
	if events[1].End != 5 {
		t.Errorf("event above the minimum was altered: end %v", events[1].End)
	}
}

func TestBuildEventsZeroLimitsDisableSplitting(t *testing.T) {
	items := []transcribe.Item{
		{Start: "00:00:00,000", End: "00:01:00,000", Text: "a minute of uninterrupted speech"},
	}

	events := BuildEvents(items, BuildOptions{})

	if len(events) != 1 {
		t.Fatalf("expected 1 event with limits disabled, got %d", len(events))
	}
	if events[0].Start != 0 || events[0].End != 60 {
		t.Errorf("timing altered with limits disabled: [%v, %v]", events[0].Start, events[0].End)
	}
}

func TestWrapTextShortUnchanged(t *testing.T) {
	if got := wrapText("short", 42); got != "short" {
		t.Errorf("short text changed: %q", got)
	}
	if got := wrapText("unbreakablesuperlongsingleword", 10); !strings.Contains(got, "unbreakable") || strings.Contains(got, "\n") {
		t.Errorf("single word should not be split: %q", got)
	}
}
