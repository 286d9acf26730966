package subtitle

import "github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt"

// Segment is one contiguous span of transcript text with a time range on
// the global timeline. It serves both as the per-chunk unit (pre-merge)
// and as the final subtitle unit; it is never mutated after creation.
type Segment struct {
	Start float64
	End   float64
	Text  string
	// Tokens are the timed tokens that produced this segment, kept for the
	// word-timing side output.
	Tokens []stt.Token
}

// WordTiming is one word's placement inside a segment.
type WordTiming struct {
	Word  string  `json:"word"`
	Start float64 `json:"startTime"`
	End   float64 `json:"endTime"`
}

// SegmentWithWordTimings is the word-timing side-channel record for one
// subtitle segment.
type SegmentWithWordTimings struct {
	ID          int          `json:"id"`
	Start       float64      `json:"startTime"`
	End         float64      `json:"endTime"`
	Text        string       `json:"text"`
	WordTimings []WordTiming `json:"wordTimings"`
}
