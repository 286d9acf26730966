package subtitle

import "strings"

// WithWordTimings builds the word-timing side-channel records from the
// same tokens that produced each segment. Segments without any timed word
// are omitted; the SRT output is unaffected. IDs match the segment's
// 1-based position in the full sequence.
func WithWordTimings(segments []Segment) []SegmentWithWordTimings {
	var out []SegmentWithWordTimings
	for i, seg := range segments {
		var words []WordTiming
		for _, tok := range seg.Tokens {
			word := strings.TrimSpace(tok.Text)
			if word == "" || !tok.Valid() {
				continue
			}
			words = append(words, WordTiming{
				Word:  word,
				Start: tok.Start,
				End:   tok.End,
			})
		}
		if len(words) == 0 {
			continue
		}
		out = append(out, SegmentWithWordTimings{
			ID:          i + 1,
			Start:       seg.Start,
			End:         seg.End,
			Text:        seg.Text,
			WordTimings: words,
		})
	}
	return out
}
