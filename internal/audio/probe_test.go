package audio

import (
	"strings"
	"testing"
)

func TestParseProbeOutput(t *testing.T) {
	out := []byte(`{
		"format": {"duration": "720.375"},
		"streams": [{"codec_name": "aac", "sample_rate": "44100"}]
	}`)

	info, err := parseProbeOutput(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Duration != 720.375 {
		t.Errorf("Duration = %v, want 720.375", info.Duration)
	}
	if info.Codec != "aac" || info.SampleRate != 44100 {
		t.Errorf("stream info = %q/%d, want aac/44100", info.Codec, info.SampleRate)
	}
}

func TestParseProbeOutput_MissingDuration(t *testing.T) {
	// A container ffprobe cannot time must fail here, not as a zero duration
	// further down the pipeline.
	for _, out := range []string{
		`{"format": {}, "streams": []}`,
		`{"format": {"duration": "N/A"}, "streams": []}`,
	} {
		_, err := parseProbeOutput([]byte(out))
		if err == nil {
			t.Errorf("parseProbeOutput(%s): expected error for unusable duration", out)
			continue
		}
		if !strings.Contains(err.Error(), "duration") {
			t.Errorf("error should name the duration: %v", err)
		}
	}
}

func TestParseProbeOutput_MalformedJSON(t *testing.T) {
	if _, err := parseProbeOutput([]byte("not json")); err == nil {
		t.Error("expected error for malformed ffprobe output")
	}
}
