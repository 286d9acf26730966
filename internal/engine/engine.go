// Package engine drives the transcription pipeline: chunk export,
// bounded-parallel transcription, overlap-aware merging, and subtitle
// output.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/audio"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/config"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/locale"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/subtitle"
)

// Transcriber is the pipeline entry point. It borrows the audio source
// from the caller and owns only the transient chunk files it exports.
type Transcriber struct {
	factory stt.Factory
	cfg     *config.Config

	// TempDir receives exported chunk files; defaults to os.TempDir().
	TempDir string
}

// New creates a Transcriber. cfg may be nil for defaults.
func New(factory stt.Factory, cfg *config.Config) *Transcriber {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Transcriber{factory: factory, cfg: cfg, TempDir: os.TempDir()}
}

// collectTokens runs one recognizer session over the whole audio resource
// and returns the token stream. totalDuration may be 0 when progress is
// not wanted.
func (t *Transcriber) collectTokens(ctx context.Context, audioPath string, loc locale.Locale, totalDuration float64, onProgress func(float64)) ([]stt.Token, error) {
	rec, err := t.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	limiter := rate.NewLimiter(rate.Limit(t.cfg.ProgressEventsPerSec), 1)

	var tokens []stt.Token
	req := stt.Request{AudioPath: audioPath, Locale: loc.Identifier, Censor: t.cfg.Censor}
	err = rec.Transcribe(ctx, req, func(tok stt.Token) error {
		if tok.Timed && !tok.Valid() {
			tok.Timed = false
		}
		tokens = append(tokens, tok)
		if tok.Valid() && totalDuration > 0 && onProgress != nil && limiter.Allow() {
			frac := tok.End / totalDuration
			if frac > 1 {
				frac = 1
			}
			onProgress(frac)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}
	return tokens, nil
}

func transcriptText(tokens []stt.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return strings.TrimSpace(b.String())
}

// TranscribeToText transcribes the audio as one job and returns the plain
// transcript text.
func (t *Transcriber) TranscribeToText(ctx context.Context, audioPath, langTag string) (string, error) {
	loc := locale.Resolve(langTag)
	tokens, err := t.collectTokens(ctx, audioPath, loc, 0, nil)
	if err != nil {
		return "", err
	}
	text := transcriptText(tokens)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// TranscribeToSubtitles transcribes the audio as one job and renders the
// segmented SRT subtitle text. A Config.MaxLength of zero selects the
// locale default.
func (t *Transcriber) TranscribeToSubtitles(ctx context.Context, audioPath, langTag string) (string, error) {
	segments, err := t.subtitleSegments(ctx, audioPath, langTag)
	if err != nil {
		return "", err
	}
	return subtitle.RenderSRT(segments), nil
}

// TranscribeToSubtitlesWithWordTimings additionally returns the per-word
// timing records drawn from the same tokens that produced each segment.
func (t *Transcriber) TranscribeToSubtitlesWithWordTimings(ctx context.Context, audioPath, langTag string) (string, []subtitle.SegmentWithWordTimings, error) {
	segments, err := t.subtitleSegments(ctx, audioPath, langTag)
	if err != nil {
		return "", nil, err
	}
	return subtitle.RenderSRT(segments), subtitle.WithWordTimings(segments), nil
}

func (t *Transcriber) subtitleSegments(ctx context.Context, audioPath, langTag string) ([]subtitle.Segment, error) {
	loc := locale.Resolve(langTag)
	tokens, err := t.collectTokens(ctx, audioPath, loc, 0, nil)
	if err != nil {
		return nil, err
	}
	if transcriptText(tokens) == "" {
		return nil, ErrEmptyTranscript
	}
	seg := subtitle.NewSegmenter(loc, t.cfg.MaxLength)
	return seg.Segment(tokens), nil
}

// result carries the chunked pipeline's final artifacts.
type result struct {
	total    float64
	segments []subtitle.Segment
}

// TranscribeChunked partitions long audio into overlapping chunks,
// transcribes them in parallel, and streams progress events. The returned
// channel delivers exactly one terminal event — Complete with artifacts on
// success, or Err on failure — and then closes. Sources shorter than the
// chunked threshold are transcribed as a single job.
func (t *Transcriber) TranscribeChunked(ctx context.Context, audioPath, langTag string) <-chan Event {
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		jobID := uuid.NewString()

		res, err := t.runChunked(ctx, audioPath, langTag, jobID, func(overall, total float64) {
			send(ctx, events, Event{
				JobID:         jobID,
				Progress:      overall,
				CurrentTime:   overall * total,
				TotalDuration: total,
			})
		})
		if err != nil {
			send(ctx, events, Event{JobID: jobID, Err: err})
			return
		}

		send(ctx, events, Event{
			JobID:         jobID,
			Progress:      1.0,
			CurrentTime:   res.total,
			TotalDuration: res.total,
			Complete:      true,
			Text:          joinSegmentText(res.segments),
			SRT:           subtitle.RenderSRT(res.segments),
			WordTimings:   subtitle.WithWordTimings(res.segments),
		})
	}()

	return events
}

func (t *Transcriber) runChunked(ctx context.Context, audioPath, langTag, jobID string, onProgress func(overall, total float64)) (*result, error) {
	loc := locale.Resolve(langTag)

	info, err := audio.Probe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe audio: %w", err)
	}
	total := info.Duration

	windows, err := audio.ComputeWindows(total, t.cfg.ChunkDuration, t.cfg.Overlap)
	if err != nil {
		return nil, err
	}

	maxLength := t.cfg.EffectiveMaxLength(loc.IsCJK)

	// Short sources skip chunking: the export and merge overhead is not
	// worth it below the threshold.
	if total < config.ChunkedThreshold || len(windows) < 2 {
		slog.Info("processing as single job", "duration_sec", total)
		tokens, err := t.collectTokens(ctx, audioPath, loc, total, func(frac float64) {
			if frac > 0.99 {
				frac = 0.99
			}
			onProgress(frac, total)
		})
		if err != nil {
			return nil, err
		}
		if transcriptText(tokens) == "" {
			return nil, ErrEmptyTranscript
		}
		seg := subtitle.NewSegmenter(loc, t.cfg.MaxLength)
		return &result{total: total, segments: seg.Segment(tokens)}, nil
	}

	chunks, err := audio.ExportChunks(ctx, audioPath, t.TempDir, jobID, windows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	// Chunk files are transient: removed on every exit path.
	defer audio.Cleanup(chunks)

	worker := &chunkWorker{
		factory:          t.factory,
		localeID:         loc.Identifier,
		censor:           t.cfg.Censor,
		maxSegmentLength: maxLength,
		progressPerSec:   t.cfg.ProgressEventsPerSec,
	}

	results, err := runScheduler(ctx, worker, chunks, func(overall float64) {
		onProgress(overall, total)
	})
	if err != nil {
		return nil, err
	}

	merged := mergeChunkSegments(results, t.cfg.DedupeMargin)
	if len(merged) == 0 {
		return nil, ErrEmptyTranscript
	}
	return &result{total: total, segments: merged}, nil
}

func joinSegmentText(segments []subtitle.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

// send delivers an event unless the caller has abandoned the stream.
func send(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
