// Package stt defines the boundary to the external speech-to-text
// capability. The engine consumes it as an ordered stream of timed text
// tokens; backend internals (models, assets, APIs) live behind Recognizer.
package stt

import (
	"context"
	"errors"
	"math"
)

// ErrNotInitialized is returned when a recognizer session is used before
// its backend is ready.
var ErrNotInitialized = errors.New("stt: recognizer not initialized")

// Token is the atomic unit of recognized speech: a text fragment plus an
// optional [Start, End) time range in seconds. Tokens concatenate in
// emission order to form the running transcript.
type Token struct {
	Text  string
	Start float64
	End   float64
	// Timed reports whether Start/End are meaningful. Punctuation-only
	// output may carry no timing.
	Timed bool
}

// Valid reports whether the token's timing is usable: it must be marked
// timed and carry finite timestamps. Backends occasionally produce NaN or
// infinite values; those tokens are discarded rather than propagated.
func (t Token) Valid() bool {
	if !t.Timed {
		return false
	}
	if math.IsNaN(t.Start) || math.IsInf(t.Start, 0) {
		return false
	}
	if math.IsNaN(t.End) || math.IsInf(t.End, 0) {
		return false
	}
	return true
}

// Request carries the per-session transcription parameters.
type Request struct {
	// AudioPath is the decodable audio resource to transcribe.
	AudioPath string
	// Locale is the fully-qualified locale identifier, e.g. "zh_TW".
	Locale string
	// Censor is threaded through to the backend untouched.
	Censor bool
}

// EmitFunc receives tokens in emission order. Returning an error aborts
// the stream.
type EmitFunc func(Token) error

// Recognizer is one transcription session. Sessions are single-use and
// must never be shared between concurrent workers.
type Recognizer interface {
	// Transcribe drives the session to completion, calling emit for every
	// token in order. It returns after the final token has been emitted.
	Transcribe(ctx context.Context, req Request, emit EmitFunc) error
}

// Factory creates one independent Recognizer per call. Each parallel
// chunk worker owns its own session, so workers never serialize through
// shared backend state.
type Factory func(ctx context.Context) (Recognizer, error)
