package engine

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/audio"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/subtitle"
)

// chunkWorker transcribes one audio chunk. Every run creates its own
// recognizer session, so concurrent chunks never share backend state.
type chunkWorker struct {
	factory          stt.Factory
	localeID         string
	censor           bool
	maxSegmentLength int
	progressPerSec   float64
}

// segmentBuffer accumulates tokens until a boundary is reached.
type segmentBuffer struct {
	text   strings.Builder
	length int
	tokens []stt.Token
}

func (b *segmentBuffer) add(tok stt.Token) {
	b.text.WriteString(tok.Text)
	b.length += utf8.RuneCountInString(tok.Text)
	if tok.Valid() {
		b.tokens = append(b.tokens, tok)
	}
}

// flush emits the buffered text as one segment and resets the buffer.
// Buffers with no timed token are discarded: they cannot be placed on the
// timeline.
func (b *segmentBuffer) flush() (subtitle.Segment, bool) {
	text := strings.TrimSpace(b.text.String())
	tokens := b.tokens
	b.text.Reset()
	b.length = 0
	b.tokens = nil

	if text == "" || len(tokens) == 0 {
		return subtitle.Segment{}, false
	}
	return subtitle.Segment{
		Start:  tokens[0].Start,
		End:    tokens[len(tokens)-1].End,
		Text:   text,
		Tokens: tokens,
	}, true
}

// run drives the recognizer over one chunk and returns segments with
// times already translated onto the global timeline. Progress callbacks
// are throttled; a final 1.0 is always delivered on success.
func (w *chunkWorker) run(ctx context.Context, chunk audio.Chunk, onProgress func(float64)) ([]subtitle.Segment, error) {
	rec, err := w.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w: %w", chunk.Index, ErrTranscriptionFailed, err)
	}

	limiter := rate.NewLimiter(rate.Limit(w.progressPerSec), 1)
	chunkDuration := chunk.Duration()

	var (
		segments []subtitle.Segment
		buf      segmentBuffer
	)

	req := stt.Request{AudioPath: chunk.Path, Locale: w.localeID, Censor: w.censor}
	err = rec.Transcribe(ctx, req, func(tok stt.Token) error {
		// Drop numerically invalid timing instead of propagating it, but
		// keep the text so no words are lost.
		if tok.Timed && !tok.Valid() {
			tok.Timed = false
		}

		localEnd := tok.End
		if tok.Valid() {
			tok.Start += chunk.Start
			tok.End += chunk.Start
		}
		buf.add(tok)

		if buf.length >= w.maxSegmentLength || subtitle.EndsWithSentenceTerminator(strings.TrimRight(tok.Text, " ")) {
			if seg, ok := buf.flush(); ok {
				segments = append(segments, seg)
			}
		}

		if tok.Valid() && onProgress != nil && limiter.Allow() {
			frac := localEnd / chunkDuration
			if frac > 1 {
				frac = 1
			}
			onProgress(frac)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w: %w", chunk.Index, ErrTranscriptionFailed, err)
	}

	// Flush any trailing partial buffer.
	if seg, ok := buf.flush(); ok {
		segments = append(segments, seg)
	}

	if onProgress != nil {
		onProgress(1.0)
	}
	return segments, nil
}
