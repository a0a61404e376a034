package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wordpop/internal/caption"
)

var renderCmd = &cobra.Command{
	Use:   "render [words_json]",
	Short: "Render word timings into pop-style ASS captions",
	Long: `Render a JSON array of word timings into an ASS subtitle file where
the spoken word is highlighted and pops while it is active.

The input is a JSON array of {"word", "start", "end"} objects with
times in seconds, as written by the transcribe command. Captions are
laid out for a 1080x1920 portrait canvas.

Examples:
  wordpop render clip.words.json
  wordpop render clip.words.json -o captions.ass
  wordpop render clip.words.json --style style.toml
  wordpop render clip.words.json -w 4 --active "#00FF88" --no-uppercase`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	addStyleFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	wordsPath := args[0]

	if _, err := os.Stat(wordsPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", wordsPath)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = replaceExt(wordsPath, ".ass")
	}

	style, err := resolveStyle(cmd)
	if err != nil {
		return err
	}
	renderer, err := caption.NewRenderer(style)
	if err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}

	words, err := caption.LoadWords(wordsPath)
	if err != nil {
		return err
	}

	logger.Infow("Rendering captions",
		"input", wordsPath,
		"output", outputPath,
		"words", len(words),
		"words_per_caption", style.WordsPerCaption,
	)

	if err := renderer.WriteFile(words, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captions rendered successfully: %s\n", absOutput)
	fmt.Printf("  Words: %d\n", len(words))
	fmt.Printf("  Captions: %d\n", captionCount(len(words), style.WordsPerCaption))

	return nil
}
