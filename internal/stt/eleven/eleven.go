// Package eleven implements stt.Recognizer on top of the ElevenLabs
// speech-to-text HTTP API.
package eleven

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt"
)

const (
	apiURL        = "https://api.elevenlabs.io/v1/speech-to-text"
	modelID       = "scribe_v1"
	uploadTimeout = 30 * time.Minute
)

// word mirrors one entry of the API's word list.
type word struct {
	Text  string   `json:"text"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Type  string   `json:"type"` // "word", "spacing", "audio_event"
}

// response is the top-level API JSON structure.
type response struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
	Words        []word `json:"words"`
}

// Client is a single-use stt.Recognizer backed by the ElevenLabs API.
type Client struct {
	apiKey string
	http   *http.Client
}

// New creates a client. The API key may be empty for unauthenticated use.
func New(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: uploadTimeout},
	}
}

// Factory returns an stt.Factory producing one fresh client per session.
func Factory(apiKey string) stt.Factory {
	return func(ctx context.Context) (stt.Recognizer, error) {
		return New(apiKey), nil
	}
}

// mimeFromExt returns the MIME type for common audio extensions.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "audio/mp3"
	case ".m4a":
		return "audio/m4a"
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".aac":
		return "audio/aac"
	default:
		return "application/octet-stream"
	}
}

// Transcribe uploads the audio resource and emits the resulting word list
// as an ordered token stream.
func (c *Client) Transcribe(ctx context.Context, req stt.Request, emit stt.EmitFunc) error {
	if c.http == nil {
		return stt.ErrNotInitialized
	}

	f, err := os.Open(req.AudioPath)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		defer pw.Close()
		defer mw.Close()
		errCh <- writeForm(mw, f, req)
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, pr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		httpReq.Header.Set("xi-api-key", c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if writeErr := <-errCh; writeErr != nil {
		return fmt.Errorf("multipart write: %w", writeErr)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	for _, w := range out.Words {
		if w.Type == "audio_event" {
			continue
		}
		tok := stt.Token{Text: w.Text}
		if w.Start != nil && w.End != nil {
			tok.Start = *w.Start
			tok.End = *w.End
			tok.Timed = true
		}
		if err := emit(tok); err != nil {
			return err
		}
	}
	return nil
}

func writeForm(mw *multipart.Writer, f *os.File, req stt.Request) error {
	if err := mw.WriteField("model_id", modelID); err != nil {
		return err
	}
	if lang := languageCode(req.Locale); lang != "" {
		if err := mw.WriteField("language_code", lang); err != nil {
			return err
		}
	}
	if req.Censor {
		if err := mw.WriteField("censor", "true"); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(f.Name())))
	h.Set("Content-Type", mimeFromExt(filepath.Ext(f.Name())))
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

// languageCode extracts the bare language subtag from a locale identifier.
func languageCode(locale string) string {
	if i := strings.IndexByte(locale, '_'); i > 0 {
		return strings.ToLower(locale[:i])
	}
	return strings.ToLower(locale)
}
