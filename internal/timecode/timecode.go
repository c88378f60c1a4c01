package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Zero is the clamp value returned for input that cannot be rendered or
// parsed. Editable time fields feed transient garbage through this package
// during typing, so the codec never reports an error.
const Zero = "00:00:00,000"

// Format renders fractional seconds as an SRT timecode (HH:MM:SS,mmm),
// rounded to the nearest millisecond. Negative and non-finite input clamp
// to the zero timecode. Behavior above 99 hours is undefined.
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return Zero
	}

	total := int64(math.Round(seconds * 1000))
	millis := total % 1000
	total /= 1000

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Parse converts a timecode string to fractional seconds. It accepts
// H:M:S.ms, M:S.ms, or a bare fractional-seconds string; a comma or period
// is an interchangeable fractional separator and surrounding whitespace is
// ignored. Unparseable input yields 0 so a malformed manual edit snaps to
// zero instead of failing.
func Parse(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	// comma as fractional separator, SRT style
	text = strings.ReplaceAll(text, ",", ".")

	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0
	}

	var seconds float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0
		}
		seconds = seconds*60 + v
	}

	return seconds
}
