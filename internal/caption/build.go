package caption

import (
	"strings"
	"unicode/utf8"

	"tala/internal/timecode"
	"tala/internal/transcribe"
)

// most players render at most two caption lines
const maxLines = 2

// BuildOptions carries the readability limits applied while mapping
// transcription output into caption events. Zero values disable the
// corresponding limit. The caption package keeps its own options type
// because the project package persists caption events.
type BuildOptions struct {
	MaxCharsPerLine int
	MinDuration     float64 // seconds
	MaxDuration     float64 // seconds
}

// BuildEvents maps transcription output into caption events: timecodes are
// parsed (malformed ones snap to zero), each event gets a fresh identifier,
// and text is wrapped to the per-line character limit. Items longer than the
// duration or character limits are split into evenly timed pieces; items
// shorter than the minimum duration are extended. Items with empty text or
// an empty time range are skipped.
func BuildEvents(items []transcribe.Item, opts BuildOptions) []Event {
	var events []Event

	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}

		start := timecode.Parse(item.Start)
		end := timecode.Parse(item.End)
		if end <= start {
			continue
		}

		for _, span := range splitSpan(start, end, text, opts) {
			ev := Event{
				ID:         NewID(),
				Start:      span.start,
				End:        span.end,
				Text:       wrapText(span.text, opts.MaxCharsPerLine),
				Speaker:    strings.TrimSpace(item.Speaker),
				Confidence: item.Confidence,
			}
			if opts.MinDuration > 0 && ev.End-ev.Start < opts.MinDuration {
				ev.End = ev.Start + opts.MinDuration
			}
			events = append(events, ev)
		}
	}

	return events
}

type textSpan struct {
	start, end float64
	text       string
}

func needsSplit(text string, duration float64, opts BuildOptions) bool {
	if opts.MaxCharsPerLine > 0 &&
		utf8.RuneCountInString(text) > opts.MaxCharsPerLine*maxLines {
		return true
	}
	if opts.MaxDuration > 0 && duration > opts.MaxDuration {
		return true
	}
	return false
}

// splitSpan breaks an over-long item into pieces that fit the duration and
// character limits, distributing words evenly and dividing the time range
// into equal slices. The last piece ends exactly at the original end.
func splitSpan(start, end float64, text string, opts BuildOptions) []textSpan {
	duration := end - start
	if !needsSplit(text, duration, opts) {
		return []textSpan{{start: start, end: end, text: text}}
	}

	words := strings.Fields(text)

	numSplits := 1
	if opts.MaxCharsPerLine > 0 {
		maxChars := opts.MaxCharsPerLine * maxLines
		totalChars := utf8.RuneCountInString(text)
		numSplits = (totalChars + maxChars - 1) / maxChars
	}
	if opts.MaxDuration > 0 {
		durationSplits := int(duration/opts.MaxDuration) + 1
		if durationSplits > numSplits {
			numSplits = durationSplits
		}
	}
	if numSplits > len(words) {
		numSplits = len(words)
	}
	if numSplits <= 1 {
		return []textSpan{{start: start, end: end, text: text}}
	}

	wordsPerSplit := (len(words) + numSplits - 1) / numSplits
	durationPerSplit := duration / float64(numSplits)

	var spans []textSpan
	currentStart := start
	remaining := words
	for len(remaining) > 0 {
		take := wordsPerSplit
		if take > len(remaining) {
			take = len(remaining)
		}
		splitWords := remaining[:take]
		remaining = remaining[take:]

		currentEnd := currentStart + durationPerSplit
		if len(remaining) == 0 {
			currentEnd = end
		}

		spans = append(spans, textSpan{
			start: currentStart,
			end:   currentEnd,
			text:  strings.Join(splitWords, " "),
		})
		currentStart = currentEnd
	}

	return spans
}

// wrapText splits text onto up to two lines at the word boundary closest to
// the middle when it exceeds the per-line limit.
func wrapText(text string, maxCharsPerLine int) string {
	if maxCharsPerLine <= 0 {
		return text
	}

	runeCount := utf8.RuneCountInString(text)
	if runeCount <= maxCharsPerLine {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	// find the split point closest to the middle
	middle := runeCount / 2
	bestSplit := 0
	bestDiff := runeCount

	currentLen := 0
	for i, word := range words[:len(words)-1] {
		currentLen += utf8.RuneCountInString(word)
		if i > 0 {
			currentLen++ // space
		}

		diff := currentLen - middle
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i + 1
		}
	}

	if bestSplit > 0 && bestSplit < len(words) {
		return strings.Join(words[:bestSplit], " ") + "\n" +
			strings.Join(words[bestSplit:], " ")
	}

	return text
}
