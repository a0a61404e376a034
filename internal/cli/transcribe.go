package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"wordpop/internal/audio"
	"wordpop/internal/caption"
	"wordpop/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Transcribe a media file into word-timestamp JSON",
	Long: `Transcribe the specified audio or video file into a JSON array of
word timings, one {"word", "start", "end"} object per spoken word.

The output feeds the render command, or any other tool that wants
word-level timings. The command accepts both audio files (mp3, wav,
aac, etc.) and video files (mp4, mkv, etc.); for video files, audio is
automatically extracted first. Long recordings are split into chunks
and transcribed in parallel.

Examples:
  wordpop transcribe audio.mp3
  wordpop transcribe video.mp4 -o words.json
  wordpop transcribe video.mp4 --provider gemini --api-key YOUR_KEY
  wordpop transcribe podcast.mp3 -d 2 --concurrency 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	addTranscriptionFlags(transcribeCmd)
}

// addTranscriptionFlags registers the transcription surface shared by
// transcribe and generate.
func addTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().
		String("provider", "openai", "Transcription provider (openai, gemini)")
	cmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY/GEMINI_API_KEY env var)")
	cmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific default)")
	cmd.Flags().
		String("prompt", "", "Extra guidance passed to the transcription model")
	cmd.Flags().
		IntP("chunk-minutes", "d", 5, "Split audio into chunks of this many minutes (0 disables)")
	cmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	cmd.Flags().
		Bool("no-lowercase", false, "Keep the provider's casing instead of lowercasing words")
	cmd.Flags().
		Float64("init-start", 0, "Never start the first word before this many seconds")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	outputPath, _ := cmd.Flags().GetString("output")
	noLowercase, _ := cmd.Flags().GetBool("no-lowercase")
	initStart, _ := cmd.Flags().GetFloat64("init-start")
	if outputPath == "" {
		outputPath = replaceExt(mediaPath, ".words.json")
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"output", outputPath,
	)

	result, err := transcribeMedia(ctx, cmd, mediaPath)
	if err != nil {
		return err
	}

	words := transcribe.Normalize(result.Words, !noLowercase, initStart)
	if err := writeWords(outputPath, words); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Word timings written successfully: %s\n", absOutput)
	fmt.Printf("  Words: %d\n", len(words))
	if result.Language != "" {
		fmt.Printf("  Language: %s\n", result.Language)
	}
	if result.Duration > 0 {
		fmt.Printf("  Duration: %s\n", result.Duration.String())
	}

	return nil
}

// transcribeMedia runs the shared media-to-words pipeline: transcode
// to a small mono mp3 in a temp directory, split into chunks when the
// recording is long, and transcribe with the configured provider.
func transcribeMedia(ctx context.Context, cmd *cobra.Command, mediaPath string) (*transcribe.Result, error) {
	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	chunkMinutes, _ := cmd.Flags().GetInt("chunk-minutes")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	language, _ := cmd.Flags().GetString("language")

	provider := transcribe.Provider(providerStr)
	apiKey, err := resolveAPIKey(provider, apiKey)
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "wordpop-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Infow("Preparing audio for transcription",
		"input", mediaPath,
		"provider", providerStr,
	)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	if err := audio.Transcode(ctx, mediaPath, audioPath, audio.DefaultTranscodeOptions()); err != nil {
		return nil, fmt.Errorf("failed to prepare audio: %w", err)
	}

	duration, err := audio.Duration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}
	logger.Infow("Audio prepared",
		"duration", duration.String(),
	)

	transcriber, err := transcribe.New(ctx, provider, apiKey, transcribe.Options{
		Language: language,
		Model:    model,
		Prompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	chunkDur := time.Duration(chunkMinutes) * time.Minute
	if chunkDur <= 0 || duration <= chunkDur {
		logger.Infow("Transcribing audio")
		result, err := transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
		return result, nil
	}

	logger.Infow("Splitting audio into chunks",
		"chunk_duration", chunkDur.String(),
	)
	chunks, err := audio.Split(ctx, audioPath, chunkDur, filepath.Join(tempDir, "chunks"))
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	logger.Infow("Transcribing audio chunks",
		"count", len(chunks),
		"concurrency", concurrency,
	)
	result, err := transcribe.Chunked(ctx, transcriber, chunks, concurrency)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	return result, nil
}

// resolveAPIKey returns the explicit key, or falls back to the
// provider's environment variable.
func resolveAPIKey(provider transcribe.Provider, apiKey string) (string, error) {
	if apiKey != "" {
		return apiKey, nil
	}
	var envVar string
	switch provider {
	case transcribe.ProviderOpenAI:
		envVar = "OPENAI_API_KEY"
	case transcribe.ProviderGemini:
		envVar = "GEMINI_API_KEY"
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required: use --api-key flag or set %s environment variable", envVar)
}

// writeWords saves word timings as an indented JSON array, the same
// shape the render command reads back.
func writeWords(path string, words []caption.Word) error {
	data, err := json.MarshalIndent(words, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write words file: %w", err)
	}
	return nil
}
