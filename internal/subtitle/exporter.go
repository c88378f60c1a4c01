package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tala/internal/caption"
	"tala/internal/timecode"
)

// ExportSRT renders the document in SubRip format. Events are sorted
// ascending by start time (stable, so ties keep their ordinal order) and
// reindexed 1-based at export time regardless of internal identifiers.
// Export is a pure read: the document is never mutated.
func ExportSRT(doc *caption.Document) string {
	events := doc.Snapshot()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})

	var sb strings.Builder
	for i, ev := range events {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timecode.Format(ev.Start),
			timecode.Format(ev.End)))

		// text
		sb.WriteString(ev.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// WriteSRT exports the document to a file, creating parent directories.
func WriteSRT(doc *caption.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportSRT(doc)), 0644)
}
