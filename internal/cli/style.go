package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wordpop/internal/config"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Manage caption style files",
}

var styleInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented style file carrying every default",
	Long: `Write a sample TOML style file with every styling default, ready to
edit and pass to render or generate with --style.

Keys you delete from the file fall back to their defaults.

Examples:
  wordpop style init
  wordpop style init custom.toml
  wordpop style init wordpop.toml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStyleInit,
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.AddCommand(styleInitCmd)

	styleInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runStyleInit(cmd *cobra.Command, args []string) error {
	path := "wordpop.toml"
	if len(args) == 1 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists: use --force to overwrite", path)
	}
	if err := config.CreateSample(path); err != nil {
		return err
	}

	absPath, _ := filepath.Abs(path)
	fmt.Printf("Style file created: %s\n", absPath)
	return nil
}

// addStyleFlags registers the styling surface shared by render and
// generate. Flag defaults mirror config.Default so help shows the real
// values; applyStyleFlags only copies flags the user actually set.
func addStyleFlags(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.Flags().
		StringP("style", "s", "", "TOML style file (flags override its values)")
	cmd.Flags().
		IntP("words-per-caption", "w", defaults.WordsPerCaption, "Words shown per caption block")
	cmd.Flags().String("font", defaults.Font, "Font family name")
	cmd.Flags().Int("font-size", defaults.FontSize, "Font size in script pixels")
	cmd.Flags().Int("outline", defaults.OutlineWidth, "Outline width")
	cmd.Flags().Int("shadow", defaults.ShadowDepth, "Shadow depth")
	cmd.Flags().
		Int("margin-v", defaults.MarginVertical, "Vertical margin from the bottom edge")
	cmd.Flags().Int("margin-h", defaults.MarginHorizontal, "Horizontal margins")
	cmd.Flags().
		String("active", defaults.ActiveColor, "Highlight color of the spoken word (#RRGGBB)")
	cmd.Flags().
		String("inactive", defaults.InactiveColor, "Color of the other words (#RRGGBB)")
	cmd.Flags().
		String("outline-color", defaults.OutlineColor, "Outline color (#RRGGBB)")
	cmd.Flags().
		Bool("no-uppercase", false, "Keep word casing instead of uppercasing")
	cmd.Flags().
		Float64("tail-hold", defaults.TailHold, "Extra seconds the last word of a block stays up")
	cmd.Flags().Int("pop-in-ms", defaults.PopInMs, "Pop grow duration in milliseconds")
	cmd.Flags().Int("pop-out-ms", defaults.PopOutMs, "Pop settle duration in milliseconds")
	cmd.Flags().
		Int("pop-outline-extra", defaults.PopOutlineExtra, "Outline growth at the peak of the pop")
	cmd.Flags().
		Float64("pop-blur", defaults.PopBlur, "Edge blur at the peak of the pop")
}

// applyStyleFlags lays explicitly set flags over style.
func applyStyleFlags(cmd *cobra.Command, style *config.Style) {
	flags := cmd.Flags()
	if flags.Changed("words-per-caption") {
		style.WordsPerCaption, _ = flags.GetInt("words-per-caption")
	}
	if flags.Changed("font") {
		style.Font, _ = flags.GetString("font")
	}
	if flags.Changed("font-size") {
		style.FontSize, _ = flags.GetInt("font-size")
	}
	if flags.Changed("outline") {
		style.OutlineWidth, _ = flags.GetInt("outline")
	}
	if flags.Changed("shadow") {
		style.ShadowDepth, _ = flags.GetInt("shadow")
	}
	if flags.Changed("margin-v") {
		style.MarginVertical, _ = flags.GetInt("margin-v")
	}
	if flags.Changed("margin-h") {
		style.MarginHorizontal, _ = flags.GetInt("margin-h")
	}
	if flags.Changed("active") {
		style.ActiveColor, _ = flags.GetString("active")
	}
	if flags.Changed("inactive") {
		style.InactiveColor, _ = flags.GetString("inactive")
	}
	if flags.Changed("outline-color") {
		style.OutlineColor, _ = flags.GetString("outline-color")
	}
	if flags.Changed("no-uppercase") {
		noUppercase, _ := flags.GetBool("no-uppercase")
		style.Uppercase = !noUppercase
	}
	if flags.Changed("tail-hold") {
		style.TailHold, _ = flags.GetFloat64("tail-hold")
	}
	if flags.Changed("pop-in-ms") {
		style.PopInMs, _ = flags.GetInt("pop-in-ms")
	}
	if flags.Changed("pop-out-ms") {
		style.PopOutMs, _ = flags.GetInt("pop-out-ms")
	}
	if flags.Changed("pop-outline-extra") {
		style.PopOutlineExtra, _ = flags.GetInt("pop-outline-extra")
	}
	if flags.Changed("pop-blur") {
		style.PopBlur, _ = flags.GetFloat64("pop-blur")
	}
}

// resolveStyle builds the effective style: defaults, then the --style
// file if given, then any explicitly set flags on top.
func resolveStyle(cmd *cobra.Command) (config.Style, error) {
	style := config.Default()
	if stylePath, _ := cmd.Flags().GetString("style"); stylePath != "" {
		loaded, err := config.Load(stylePath)
		if err != nil {
			return config.Style{}, err
		}
		style = loaded
	}
	applyStyleFlags(cmd, &style)
	return style, nil
}
