package engine

import (
	"testing"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/subtitle"
)

func seg(start, end float64, text string) subtitle.Segment {
	return subtitle.Segment{Start: start, End: end, Text: text}
}

func TestMergeChunkSegments_DropsOverlapDuplicates(t *testing.T) {
	// Chunk 0 ends at 301.5; with a 1s margin the threshold is 300.5, so
	// chunk 1's segment at 300.0 duplicates captured content and is
	// dropped, while 303.0 survives.
	results := [][]subtitle.Segment{
		{seg(0, 150, "a"), seg(150, 301.5, "b")},
		{seg(300.0, 302, "dup"), seg(303.0, 310, "c")},
	}

	merged := mergeChunkSegments(results, 1.0)
	if len(merged) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(merged), merged)
	}
	for _, s := range merged {
		if s.Text == "dup" {
			t.Error("duplicate segment from the overlap window was kept")
		}
	}
	if merged[2].Text != "c" {
		t.Errorf("last segment = %q, want \"c\"", merged[2].Text)
	}
}

func TestMergeChunkSegments_FirstChunkVerbatim(t *testing.T) {
	results := [][]subtitle.Segment{
		{seg(0, 1, "a"), seg(1, 2, "b")},
	}
	merged := mergeChunkSegments(results, 1.0)
	if len(merged) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(merged))
	}
}

func TestMergeChunkSegments_SortedOutput(t *testing.T) {
	results := [][]subtitle.Segment{
		{seg(0, 290, "a"), seg(290, 299, "b")},
		{seg(299.5, 400, "c"), seg(400, 500, "d")},
		{seg(499.5, 600, "e")},
	}
	merged := mergeChunkSegments(results, 1.0)
	for i := 1; i < len(merged); i++ {
		if merged[i].Start < merged[i-1].Start {
			t.Errorf("output not sorted at %d: %v < %v", i, merged[i].Start, merged[i-1].Start)
		}
	}
	for _, s := range merged {
		if s.Start < 0 {
			t.Errorf("segment %q starts before 0: %v", s.Text, s.Start)
		}
	}
}

func TestMergeChunkSegments_EmptyChunkTolerated(t *testing.T) {
	results := [][]subtitle.Segment{
		{seg(0, 299, "a")},
		nil,
		{seg(590, 700, "b")},
	}
	merged := mergeChunkSegments(results, 1.0)
	if len(merged) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(merged), merged)
	}
}
