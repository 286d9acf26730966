package subtitle

import (
	"fmt"
	"math"
	"strings"
)

// formatSRTTime converts seconds to the SRT time format HH:MM:SS,mmm.
// Non-finite or negative inputs clamp to 0: this stage must never crash on
// upstream timing problems it cannot observe.
func formatSRTTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	remainder := math.Mod(seconds, 3600)
	minutes := int(remainder / 60)
	secs := math.Mod(remainder, 60)
	millis := int(math.Round(math.Mod(secs, 1) * 1000))
	if millis >= 1000 {
		millis = 999
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, int(secs), millis)
}

// RenderSRT renders the segment sequence as an SRT subtitle file: 1-based
// index, time line, text, blank-line separated.
func RenderSRT(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n",
			i+1, formatSRTTime(seg.Start), formatSRTTime(seg.End), seg.Text)
		if i < len(segments)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
