package engine

import "errors"

// Pipeline error kinds. Chunk-level failures are never retried: a single
// failure fails the whole batch, because a subtitle file missing part of
// an episode is worse than an explicit error.
var (
	// ErrExportFailed marks a failed audio chunk materialization.
	ErrExportFailed = errors.New("engine: chunk export failed")

	// ErrTranscriptionFailed marks a transcription backend failure
	// mid-stream.
	ErrTranscriptionFailed = errors.New("engine: transcription failed")

	// ErrEmptyTranscript is returned when the stream completes with zero
	// recognized content (silent or unsupported audio).
	ErrEmptyTranscript = errors.New("engine: empty transcript")
)
