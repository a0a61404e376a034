package cli

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wordpop/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wordpop",
	Short: "Karaoke-style word-pop captions for short videos",
	Long: `Wordpop turns word-level speech timings into ASS captions where the
spoken word pops and changes color in sync with the audio.

It renders existing word-timestamp JSON directly, or produces the
timings itself by transcribing audio and video files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}

// replaceExt swaps the final file extension, keeping the rest of the
// path.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// captionCount is the number of caption blocks n words fill.
func captionCount(words, perCaption int) int {
	if words <= 0 || perCaption < 1 {
		return 0
	}
	return (words + perCaption - 1) / perCaption
}
