package subtitle

import (
	"testing"
	"unicode/utf8"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/locale"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt"
)

func timedToken(text string, start, end float64) stt.Token {
	return stt.Token{Text: text, Start: start, End: end, Timed: true}
}

func englishTokens() []stt.Token {
	return []stt.Token{
		timedToken("Hello", 0, 0.5),
		timedToken(" world.", 0.5, 1.0),
		timedToken(" This", 1.2, 1.4),
		timedToken(" is", 1.4, 1.5),
		timedToken(" a", 1.5, 1.6),
		timedToken(" test.", 1.6, 2.0),
	}
}

func TestSegment_ShortSentencesMergeIntoOne(t *testing.T) {
	s := NewSegmenter(locale.Resolve("en-us"), 40)
	segments := s.Segment(englishTokens())

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(segments), segments)
	}
	if segments[0].Text != "Hello world. This is a test." {
		t.Errorf("text = %q", segments[0].Text)
	}
	if segments[0].Start != 0 || segments[0].End != 2.0 {
		t.Errorf("time range = [%v, %v], want [0, 2]", segments[0].Start, segments[0].End)
	}
}

func TestSegment_SplitsAtSentenceBoundary(t *testing.T) {
	// 28 chars total exceeds 20, but each sentence fits: the split happens
	// at the sentence boundary, never mid-sentence.
	s := NewSegmenter(locale.Resolve("en-us"), 20)
	segments := s.Segment(englishTokens())

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segments), segments)
	}
	if segments[0].Text != "Hello world." {
		t.Errorf("segment 0 text = %q, want \"Hello world.\"", segments[0].Text)
	}
	if segments[1].Text != "This is a test." {
		t.Errorf("segment 1 text = %q, want \"This is a test.\"", segments[1].Text)
	}
	if segments[0].End != 1.0 {
		t.Errorf("segment 0 end = %v, want 1.0", segments[0].End)
	}
	if segments[1].Start != 1.2 {
		t.Errorf("segment 1 start = %v, want 1.2", segments[1].Start)
	}
}

func TestSegment_WordFallbackRespectsSentences(t *testing.T) {
	s := NewSegmenter(locale.Resolve("en-us"), 10)
	segments := s.Segment(englishTokens())

	want := []string{"Hello", "world.", "This is a", "test."}
	if len(segments) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(segments), segments)
	}
	for i, w := range want {
		if segments[i].Text != w {
			t.Errorf("segment %d text = %q, want %q", i, segments[i].Text, w)
		}
	}
}

func TestSegment_LengthBound(t *testing.T) {
	for _, max := range []int{10, 18, 25, 40} {
		s := NewSegmenter(locale.Resolve("en-us"), max)
		for _, seg := range s.Segment(englishTokens()) {
			if n := utf8.RuneCountInString(seg.Text); n > max {
				t.Errorf("max=%d: segment %q has %d chars", max, seg.Text, n)
			}
		}
	}
}

func TestSegment_IndivisibleTokenEmittedWhole(t *testing.T) {
	word := "Supercalifragilisticexpialidocious"
	s := NewSegmenter(locale.Resolve("en-us"), 10)
	segments := s.Segment([]stt.Token{timedToken(word, 0, 2)})

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != word {
		t.Errorf("indivisible token was corrupted: %q", segments[0].Text)
	}
}

func TestSegment_CJKClauseSplit(t *testing.T) {
	// 23 chars, one sentence: clause split then greedy re-merge under the
	// default CJK limit of 18.
	tokens := []stt.Token{
		timedToken("今天天氣很好，", 0, 2),
		timedToken("我們去公園散步吧，", 2, 5),
		timedToken("然後再去吃飯。", 5, 7),
	}
	s := NewSegmenter(locale.Resolve("zh-tw"), 0)
	if s.MaxLength != 18 {
		t.Fatalf("default CJK max length = %d, want 18", s.MaxLength)
	}

	segments := s.Segment(tokens)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segments), segments)
	}
	if segments[0].Text != "今天天氣很好，我們去公園散步吧，" {
		t.Errorf("segment 0 text = %q", segments[0].Text)
	}
	if segments[1].Text != "然後再去吃飯。" {
		t.Errorf("segment 1 text = %q", segments[1].Text)
	}
	if segments[0].Start != 0 || segments[0].End != 5 {
		t.Errorf("segment 0 range = [%v, %v], want [0, 5]", segments[0].Start, segments[0].End)
	}
}

func TestSegment_UntimedSpanDropped(t *testing.T) {
	tokens := []stt.Token{
		timedToken("First sentence here.", 0, 2),
		{Text: " Second sentence with no timing."},
	}
	s := NewSegmenter(locale.Resolve("en-us"), 40)
	segments := s.Segment(tokens)

	if len(segments) != 1 {
		t.Fatalf("expected untimed span to be dropped, got %d segments", len(segments))
	}
	if segments[0].Text != "First sentence here." {
		t.Errorf("text = %q", segments[0].Text)
	}
}

func TestSegment_Empty(t *testing.T) {
	s := NewSegmenter(locale.Resolve("en-us"), 40)
	if got := s.Segment(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestSegment_OrderedByStartTime(t *testing.T) {
	s := NewSegmenter(locale.Resolve("en-us"), 10)
	segments := s.Segment(englishTokens())
	for i := 1; i < len(segments); i++ {
		if segments[i].Start < segments[i-1].Start {
			t.Errorf("segments out of order at %d: %v < %v", i, segments[i].Start, segments[i-1].Start)
		}
	}
}
