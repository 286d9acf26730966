package engine

import (
	"sync"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/subtitle"
)

// Event is one element of the progress stream. Exactly one terminal event
// is delivered per job: either Complete is true and the artifact fields
// are populated, or Err is set. The channel closes after it.
type Event struct {
	JobID         string
	Progress      float64
	CurrentTime   float64
	TotalDuration float64
	Complete      bool
	Err           error

	// Populated on the successful terminal event.
	Text        string
	SRT         string
	WordTimings []subtitle.SegmentWithWordTimings
}

// progressTracker aggregates per-chunk progress fractions into one overall
// value. Many workers update concurrently, so every read-modify-write of
// the aggregate is serialized behind one mutex.
type progressTracker struct {
	mu          sync.Mutex
	fractions   []float64
	lastEmitted float64
}

func newProgressTracker(chunkCount int) *progressTracker {
	return &progressTracker{fractions: make([]float64, chunkCount)}
}

// update records the latest fraction for one chunk and returns the overall
// progress: the mean of all chunk fractions (not-yet-started chunks count
// as 0), clamped to 0.99. The value 1.0 is reserved for true completion so
// callers never see a premature "done".
func (t *progressTracker) update(index int, fraction float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateLocked(index, fraction)
}

// updateAndNotify records the fraction and delivers the overall value to
// notify while still holding the lock, so concurrent workers can never
// deliver aggregate values out of order. The emitted stream is forced
// monotonic.
func (t *progressTracker) updateAndNotify(index int, fraction float64, notify func(float64)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	overall := t.updateLocked(index, fraction)
	if overall < t.lastEmitted {
		overall = t.lastEmitted
	}
	t.lastEmitted = overall
	if notify != nil {
		notify(overall)
	}
}

func (t *progressTracker) updateLocked(index int, fraction float64) float64 {
	if index < 0 || index >= len(t.fractions) {
		return t.overallLocked()
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	t.fractions[index] = fraction
	return t.overallLocked()
}

func (t *progressTracker) overallLocked() float64 {
	if len(t.fractions) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range t.fractions {
		sum += f
	}
	overall := sum / float64(len(t.fractions))
	if overall > 0.99 {
		overall = 0.99
	}
	return overall
}
