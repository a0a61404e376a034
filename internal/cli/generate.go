package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wordpop/internal/audio"
	"wordpop/internal/caption"
	"wordpop/internal/transcribe"
	"wordpop/internal/video"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Transcribe a media file and render pop-style captions",
	Long: `Transcribe the specified audio or video file and render the words as
ASS captions in one pass.

The command accepts both audio files (mp3, wav, aac, etc.) and video
files (mp4, mkv, etc.). For video files, audio is automatically
extracted before transcription. Long recordings are split into chunks
and transcribed in parallel.

Examples:
  wordpop generate video.mp4
  wordpop generate audio.mp3 --provider gemini
  wordpop generate video.mp4 --api-key YOUR_KEY -w 4 --active "#00FF88"
  wordpop generate podcast.mp3 --words-json podcast.words.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addTranscriptionFlags(generateCmd)
	addStyleFlags(generateCmd)
	generateCmd.Flags().
		String("words-json", "", "Also write the word timings JSON to this path")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	outputPath, _ := cmd.Flags().GetString("output")
	wordsJSONPath, _ := cmd.Flags().GetString("words-json")
	noLowercase, _ := cmd.Flags().GetBool("no-lowercase")
	initStart, _ := cmd.Flags().GetFloat64("init-start")
	if outputPath == "" {
		outputPath = replaceExt(mediaPath, ".ass")
	}

	// resolve the style before paying for transcription
	style, err := resolveStyle(cmd)
	if err != nil {
		return err
	}
	renderer, err := caption.NewRenderer(style)
	if err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}

	logger.Infow("Starting caption generation",
		"input", mediaPath,
		"output", outputPath,
	)

	if audio.IsVideoFile(mediaPath) {
		if info, err := video.Probe(ctx, mediaPath); err != nil {
			logger.Warnw("Could not probe video",
				"error", err,
			)
		} else if !info.Portrait() {
			logger.Warnw("Video is not portrait; captions are laid out for 1080x1920",
				"width", info.Width,
				"height", info.Height,
			)
		}
	}

	result, err := transcribeMedia(ctx, cmd, mediaPath)
	if err != nil {
		return err
	}

	words := transcribe.Normalize(result.Words, !noLowercase, initStart)

	if wordsJSONPath != "" {
		if err := writeWords(wordsJSONPath, words); err != nil {
			return err
		}
		logger.Infow("Saved word timings",
			"path", wordsJSONPath,
		)
	}

	if err := renderer.WriteFile(words, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captions generated successfully: %s\n", absOutput)
	fmt.Printf("  Words: %d\n", len(words))
	fmt.Printf("  Captions: %d\n", captionCount(len(words), style.WordsPerCaption))
	if result.Duration > 0 {
		fmt.Printf("  Duration: %s\n", result.Duration.String())
	}

	return nil
}
