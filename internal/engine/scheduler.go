package engine

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/audio"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/subtitle"
)

// concurrencyLimit bounds the number of chunks in flight:
// clamp(chunkCount, 1, min(NumCPU/2, 4)).
func concurrencyLimit(chunkCount int) int {
	c := runtime.NumCPU() / 2
	if c > 4 {
		c = 4
	}
	if c < 1 {
		c = 1
	}
	if chunkCount > 0 && chunkCount < c {
		c = chunkCount
	}
	return c
}

// runScheduler drives chunk workers under the concurrency cap. The
// errgroup limit gives launch-as-you-go refill: as each job completes the
// next unlaunched chunk starts, keeping exactly the cap in flight until
// the backlog drains. Results land at their chunk index regardless of
// completion order, so the merged output is deterministic. The first
// failure cancels the group and fails the whole batch — no partial
// results.
func runScheduler(ctx context.Context, worker *chunkWorker, chunks []audio.Chunk, onProgress func(float64)) ([][]subtitle.Segment, error) {
	limit := concurrencyLimit(len(chunks))
	tracker := newProgressTracker(len(chunks))

	slog.Info("starting chunked transcription",
		"chunks", len(chunks), "max_concurrent", limit)

	results := make([][]subtitle.Segment, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			segments, err := worker.run(gctx, chunk, func(frac float64) {
				tracker.updateAndNotify(chunk.Index, frac, onProgress)
			})
			if err != nil {
				return err
			}
			results[chunk.Index] = segments
			slog.Debug("chunk completed", "chunk", chunk.Index, "segments", len(segments))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
