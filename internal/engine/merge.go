package engine

import (
	"sort"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/subtitle"
)

// mergeChunkSegments stitches per-chunk segment lists (indexed by chunk
// number, times already global) into one ordered, duplicate-free
// sequence.
//
// Chunk 0 is taken verbatim. For each later chunk the threshold is the
// previous chunk's last segment end minus margin; segments starting before
// it are judged to duplicate content already captured, with earlier-chunk
// context preferred. This is a heuristic, not exact alignment: it trades
// the odd sub-second gap or duplicated word at a boundary for O(n)
// simplicity.
func mergeChunkSegments(results [][]subtitle.Segment, margin float64) []subtitle.Segment {
	var merged []subtitle.Segment
	lastEnd := 0.0

	for i, segments := range results {
		if i == 0 {
			merged = append(merged, segments...)
		} else {
			threshold := lastEnd - margin
			for _, seg := range segments {
				if seg.Start < threshold {
					continue
				}
				merged = append(merged, seg)
			}
		}
		if len(segments) > 0 {
			lastEnd = segments[len(segments)-1].End
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Start < merged[b].Start
	})
	return merged
}
