package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/audio"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/config"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/engine"
	"github.com/bobcode99/PodcastAnalyzer-sub000/internal/stt/eleven"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <input-file>",
	Short: "Transcribe audio/video to SRT subtitles",
	Long: `Transcribe an audio or video file into an SRT subtitle file. Long
recordings are split into overlapping chunks and transcribed in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

var (
	language      string
	output        string
	maxLength     int
	chunkDuration float64
	overlap       float64
	censor        bool
	wordTimings   bool
	textOnly      bool
)

func init() {
	defaults := config.Default()

	transcribeCmd.Flags().StringVarP(&language, "language", "l", "en", "language tag, e.g. en, zh-tw, ja")
	transcribeCmd.Flags().StringVarP(&output, "output", "o", "", "output SRT path (default: <input>.srt)")
	transcribeCmd.Flags().IntVar(&maxLength, "max-length", 0, "max subtitle length in characters (0 = locale default)")
	transcribeCmd.Flags().Float64Var(&chunkDuration, "chunk-duration", defaults.ChunkDuration, "chunk length in seconds")
	transcribeCmd.Flags().Float64Var(&overlap, "overlap", defaults.Overlap, "chunk overlap in seconds")
	transcribeCmd.Flags().BoolVar(&censor, "censor", false, "pass the censor flag to the transcription backend")
	transcribeCmd.Flags().BoolVar(&wordTimings, "word-timings", false, "save word-timing JSON alongside the SRT")
	transcribeCmd.Flags().BoolVar(&textOnly, "text", false, "print plain transcript text instead of writing SRT")

	rootCmd.AddCommand(transcribeCmd)
}

var validExts = map[string]bool{
	".mp3": true, ".m4a": true, ".wav": true, ".flac": true,
	".ogg": true, ".aac": true, ".mp4": true, ".mov": true,
	".mkv": true, ".avi": true, ".flv": true, ".webm": true,
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", args[0])
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if !validExts[ext] {
		return fmt.Errorf("unsupported file type: %s", ext)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workingPath := inputPath
	if audio.IsVideoExtension(ext) && audio.Available() {
		base := strings.TrimSuffix(filepath.Base(inputPath), ext)
		tempAudio := filepath.Join(os.TempDir(), "temp_audio_"+base+".m4a")
		slog.Info("extracting audio from video")
		if err := audio.ExtractAudio(ctx, inputPath, tempAudio); err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		workingPath = tempAudio
		defer os.Remove(tempAudio)
	}

	if info, err := audio.Probe(ctx, workingPath); err == nil {
		slog.Info("media info",
			"duration_sec", int(info.Duration), "codec", info.Codec, "sample_rate", info.SampleRate)
	}

	cfg := config.Default()
	cfg.MaxLength = maxLength
	cfg.ChunkDuration = chunkDuration
	cfg.Overlap = overlap
	cfg.Censor = censor

	tr := engine.New(eleven.Factory(os.Getenv("ELEVENLABS_API_KEY")), cfg)

	if textOnly {
		text, err := tr.TranscribeToText(ctx, workingPath, language)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	outputSRT := output
	if outputSRT == "" {
		outputSRT = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".srt"
	}

	var final engine.Event
	for ev := range tr.TranscribeChunked(ctx, workingPath, language) {
		if ev.Err != nil {
			return ev.Err
		}
		if ev.Complete {
			final = ev
			break
		}
		slog.Debug("progress",
			"percent", fmt.Sprintf("%.1f%%", ev.Progress*100),
			"current_sec", int(ev.CurrentTime))
	}
	if !final.Complete {
		return ctx.Err()
	}

	if err := os.WriteFile(outputSRT, []byte(final.SRT), 0644); err != nil {
		return fmt.Errorf("write SRT file: %w", err)
	}
	slog.Info("SRT file saved", "path", outputSRT)

	if wordTimings {
		jsonPath := strings.TrimSuffix(outputSRT, filepath.Ext(outputSRT)) + ".words.json"
		data, err := json.MarshalIndent(final.WordTimings, "", "    ")
		if err != nil {
			return fmt.Errorf("marshal word timings: %w", err)
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return fmt.Errorf("write word timings: %w", err)
		}
		slog.Info("word timings saved", "path", jsonPath)
	}

	slog.Info("done")
	return nil
}
