package subtitle

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/locale"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt"
)

// Segmenter turns one continuous timed-token stream into bounded-length
// subtitle segments using sentence → clause → word fallback splitting.
// Sentence boundaries always win over the length limit when both can be
// satisfied in one pass.
type Segmenter struct {
	Locale    locale.Locale
	MaxLength int
}

// NewSegmenter creates a segmenter. maxLength <= 0 selects the locale
// default (18 for CJK, 40 otherwise).
func NewSegmenter(loc locale.Locale, maxLength int) *Segmenter {
	if maxLength <= 0 {
		maxLength = loc.DefaultMaxLength()
	}
	return &Segmenter{Locale: loc, MaxLength: maxLength}
}

// span is a half-open rune-index range into the concatenated transcript.
type span struct {
	start int
	end   int
}

func (s span) length() int { return s.end - s.start }

// tokenSpan records where one token's text landed in the transcript.
type tokenSpan struct {
	span
	token stt.Token
}

// Segment splits the token stream into subtitle segments. Spans that
// contain no timed token are dropped: they cannot be placed on a timeline.
func (s *Segmenter) Segment(tokens []stt.Token) []Segment {
	if len(tokens) == 0 {
		return nil
	}

	var b strings.Builder
	tokenSpans := make([]tokenSpan, 0, len(tokens))
	offset := 0
	for _, tok := range tokens {
		n := utf8.RuneCountInString(tok.Text)
		// The span covers only the token's visible content. Leading and
		// trailing whitespace must not bleed a token's timing into the
		// neighboring sentence.
		lead := n - utf8.RuneCountInString(strings.TrimLeft(tok.Text, " \t\n"))
		trail := n - utf8.RuneCountInString(strings.TrimRight(tok.Text, " \t\n"))
		tokenSpans = append(tokenSpans, tokenSpan{
			span:  span{start: offset + lead, end: offset + n - trail},
			token: tok,
		})
		b.WriteString(tok.Text)
		offset += n
	}
	text := b.String()
	runes := []rune(text)

	var segments []Segment
	for _, sentence := range s.mergeSpans(sentenceSpans(text)) {
		for _, sp := range s.splitSentence(runes, sentence) {
			if seg, ok := materialize(runes, tokenSpans, sp); ok {
				segments = append(segments, seg)
			}
		}
	}
	return segments
}

// sentenceSpans tokenizes the text into sentence spans (rune indexes)
// using UAX#29 sentence segmentation.
func sentenceSpans(text string) []span {
	var spans []span
	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		n := utf8.RuneCountInString(sentence)
		spans = append(spans, span{start: offset, end: offset + n})
		offset += n
	}
	return spans
}

// splitSentence applies the length policy to one sentence span.
func (s *Segmenter) splitSentence(runes []rune, sentence span) []span {
	if trimmedLength(runes, sentence) <= s.MaxLength {
		return []span{sentence}
	}
	if s.Locale.IsCJK {
		return s.splitCJK(runes, sentence)
	}
	return s.splitWords(runes, sentence)
}

// splitCJK splits an oversized sentence at clause punctuation, greedily
// re-merges neighboring clauses up to MaxLength, and falls through to
// word-level splitting for any clause that is still too long.
func (s *Segmenter) splitCJK(runes []rune, sentence span) []span {
	clauses := clauseSpans(runes, sentence)
	merged := s.mergeSpans(clauses)

	var out []span
	for _, c := range merged {
		if c.length() <= s.MaxLength {
			out = append(out, c)
			continue
		}
		out = append(out, s.splitWords(runes, c)...)
	}
	return out
}

// clauseSpans cuts a span after every clause punctuation mark; each clause
// keeps its trailing marker.
func clauseSpans(runes []rune, sp span) []span {
	var clauses []span
	start := sp.start
	for i := sp.start; i < sp.end; i++ {
		if isClausePunctuation(runes[i]) {
			clauses = append(clauses, span{start: start, end: i + 1})
			start = i + 1
		}
	}
	if start < sp.end {
		clauses = append(clauses, span{start: start, end: sp.end})
	}
	return clauses
}

// mergeSpans greedily joins adjacent spans while the result stays within
// MaxLength. It serves both tiers: sentence runs are packed together
// before splitting, and CJK clauses are re-joined after splitting.
func (s *Segmenter) mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if last.length()+sp.length() <= s.MaxLength {
			last.end = sp.end
		} else {
			merged = append(merged, sp)
		}
	}
	return merged
}

// splitWords greedily accumulates UAX#29 word segments into spans of at
// most MaxLength runes. The first span starts at the sentence edge and the
// last span runs to its end, so leading/trailing whitespace and
// punctuation are never dropped. A single indivisible word longer than
// MaxLength is emitted whole rather than corrupted.
func (s *Segmenter) splitWords(runes []rune, sp span) []span {
	text := string(runes[sp.start:sp.end])

	type wordSpan struct {
		span
		space bool
	}
	var words []wordSpan
	state := -1
	offset := sp.start
	rest := text
	for len(rest) > 0 {
		var w string
		w, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(w)
		words = append(words, wordSpan{
			span:  span{start: offset, end: offset + n},
			space: strings.TrimSpace(w) == "",
		})
		offset += n
	}

	var out []span
	cur := span{start: sp.start, end: sp.start}
	for _, w := range words {
		if w.space {
			// Whitespace extends the candidate end but never forces a break.
			continue
		}
		if w.end-cur.start > s.MaxLength && cur.end > cur.start {
			out = append(out, cur)
			cur = span{start: w.start, end: w.end}
			continue
		}
		cur.end = w.end
	}
	// Stretch the final span to the sentence edge.
	cur.end = sp.end
	if cur.end > cur.start {
		out = append(out, cur)
	}
	return out
}

// trimmedLength counts the span's runes ignoring leading/trailing
// whitespace, which is stripped from the rendered text anyway.
func trimmedLength(runes []rune, sp span) int {
	return utf8.RuneCountInString(strings.TrimSpace(string(runes[sp.start:sp.end])))
}

// materialize recovers a span's text and time range from the tokens that
// overlap it. Spans with no timed overlapping token are dropped.
func materialize(runes []rune, tokenSpans []tokenSpan, sp span) (Segment, bool) {
	text := strings.TrimSpace(string(runes[sp.start:sp.end]))
	if text == "" {
		return Segment{}, false
	}

	var (
		overlapping []stt.Token
		start, end  float64
		timed       bool
	)
	for _, ts := range tokenSpans {
		if ts.start >= ts.end {
			// Whitespace-only token; carries no visible content.
			continue
		}
		if ts.start >= sp.end || ts.end <= sp.start {
			continue
		}
		if !ts.token.Valid() {
			continue
		}
		overlapping = append(overlapping, ts.token)
		if !timed || ts.token.Start < start {
			start = ts.token.Start
		}
		if !timed || ts.token.End > end {
			end = ts.token.End
		}
		timed = true
	}
	if !timed {
		return Segment{}, false
	}

	return Segment{Start: start, End: end, Text: text, Tokens: overlapping}, true
}
