package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidDuration is returned when the source duration is non-finite or
// not positive.
var ErrInvalidDuration = errors.New("audio: invalid source duration")

// ErrInvalidChunking is returned when the chunk duration and overlap cannot
// produce an advancing window sequence.
var ErrInvalidChunking = errors.New("audio: invalid chunking parameters")

// Window is a [Start, End) time range in seconds.
type Window struct {
	Start float64
	End   float64
}

// Chunk is one exported, decodable slice of the source audio. The file is
// transient: created by ExportChunks, consumed by exactly one worker, and
// removed by Cleanup once the whole batch finishes.
type Chunk struct {
	Index int
	Path  string
	Start float64
	End   float64
}

// Duration returns the chunk length in seconds.
func (c Chunk) Duration() float64 {
	return c.End - c.Start
}

// ComputeWindows generates the overlapping chunk windows covering
// [0, totalDuration). Consecutive windows overlap by exactly overlap
// seconds; the final window may be shorter. Generation stops once a window
// reaches totalDuration.
func ComputeWindows(totalDuration, chunkDuration, overlap float64) ([]Window, error) {
	if math.IsNaN(totalDuration) || math.IsInf(totalDuration, 0) || totalDuration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, totalDuration)
	}
	// The loop advances by chunkDuration-overlap each step; anything outside
	// 0 < overlap < chunkDuration would stall it and generate windows forever.
	if math.IsNaN(chunkDuration) || math.IsInf(chunkDuration, 0) ||
		math.IsNaN(overlap) || math.IsInf(overlap, 0) ||
		chunkDuration <= 0 || overlap <= 0 || overlap >= chunkDuration {
		return nil, fmt.Errorf("%w: chunk=%v overlap=%v", ErrInvalidChunking, chunkDuration, overlap)
	}

	var windows []Window
	t := 0.0
	for {
		end := math.Min(t+chunkDuration, totalDuration)
		windows = append(windows, Window{Start: t, End: end})
		if end >= totalDuration {
			break
		}
		t = end - overlap
	}
	return windows, nil
}

// ExportChunks materializes one audio file per window. Exports run fully in
// parallel (I/O-bound); the first failure aborts the batch and removes any
// partially produced files.
func ExportChunks(ctx context.Context, sourcePath, outputDir, jobID string, windows []Window) ([]Chunk, error) {
	chunks := make([]Chunk, len(windows))
	for i, w := range windows {
		chunks[i] = Chunk{
			Index: i,
			Path:  filepath.Join(outputDir, fmt.Sprintf("%s_chunk_%03d.m4a", jobID, i)),
			Start: w.Start,
			End:   w.End,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			return exportRange(gctx, sourcePath, chunk)
		})
	}

	if err := g.Wait(); err != nil {
		Cleanup(chunks)
		return nil, fmt.Errorf("export chunks: %w", err)
	}

	slog.Debug("exported chunks", "count", len(chunks), "dir", outputDir)
	return chunks, nil
}

// exportRange cuts one [start, end) range out of the source.
func exportRange(ctx context.Context, sourcePath string, chunk Chunk) error {
	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-ss", formatSeconds(chunk.Start),
		"-t", formatSeconds(chunk.Duration()),
		"-i", sourcePath,
		"-vn", "-acodec", "aac", "-b:a", "128k",
		"-y",
		chunk.Path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg export chunk %d failed: %w\n%s", chunk.Index, err, string(out))
	}
	return nil
}

// Cleanup removes exported chunk files. It is safe to call on partially
// exported batches and runs on every exit path, success or failure.
func Cleanup(chunks []Chunk) {
	for _, chunk := range chunks {
		if err := os.Remove(chunk.Path); err != nil && !os.IsNotExist(err) {
			slog.Debug("cleanup chunk", "file", filepath.Base(chunk.Path), "err", err)
		}
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
