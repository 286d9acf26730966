package config

// Defaults for the chunked transcription pipeline.
const (
	// DefaultChunkDuration is the nominal length of one audio chunk in seconds.
	DefaultChunkDuration = 300.0

	// DefaultOverlap is the duplicated margin between adjacent chunks in seconds.
	DefaultOverlap = 2.0

	// ChunkedThreshold is the minimum total duration (seconds) before the
	// pipeline bothers with chunked parallel processing.
	ChunkedThreshold = 600.0
)

// SubtitleSettings holds subtitle segmentation parameters.
type SubtitleSettings struct {
	// MaxLength is the maximum subtitle length in code points. Zero means
	// "use the locale default" (18 for CJK, 40 otherwise).
	MaxLength int

	// CJKMaxLength and LatinMaxLength are the locale defaults applied when
	// MaxLength is zero.
	CJKMaxLength   int
	LatinMaxLength int
}

// Config holds the full pipeline configuration.
type Config struct {
	SubtitleSettings

	// ChunkDuration and Overlap control audio chunk window generation.
	ChunkDuration float64
	Overlap       float64

	// DedupeMargin is the safety margin (seconds) subtracted from the previous
	// chunk's last segment end when dropping duplicated segments during merge.
	// Deliberately not derived from Overlap.
	DedupeMargin float64

	// ProgressEventsPerSec throttles per-chunk progress callbacks.
	ProgressEventsPerSec float64

	// Censor is passed through to the transcription backend untouched.
	Censor bool
}

// Default returns a Config with the standard defaults.
func Default() *Config {
	return &Config{
		SubtitleSettings: SubtitleSettings{
			CJKMaxLength:   18,
			LatinMaxLength: 40,
		},
		ChunkDuration:        DefaultChunkDuration,
		Overlap:              DefaultOverlap,
		DedupeMargin:         1.0,
		ProgressEventsPerSec: 2,
	}
}

// EffectiveMaxLength resolves MaxLength against the locale defaults.
func (c *Config) EffectiveMaxLength(isCJK bool) int {
	if c.MaxLength > 0 {
		return c.MaxLength
	}
	if isCJK {
		return c.CJKMaxLength
	}
	return c.LatinMaxLength
}
