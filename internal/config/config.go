// Package config defines the caption style surface: defaults matching
// the stock look, optional TOML style files, and validation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_style.toml
var sampleStyle []byte

// Style collects every knob that shapes the rendered captions. A Style
// is resolved once per run and treated as immutable afterwards.
type Style struct {
	WordsPerCaption  int     `toml:"words_per_caption"`
	Font             string  `toml:"font"`
	FontSize         int     `toml:"font_size"`
	OutlineWidth     int     `toml:"outline_width"`
	ShadowDepth      int     `toml:"shadow_depth"`
	MarginVertical   int     `toml:"margin_vertical"`
	MarginHorizontal int     `toml:"margin_horizontal"`
	ActiveColor      string  `toml:"active_color"`
	InactiveColor    string  `toml:"inactive_color"`
	OutlineColor     string  `toml:"outline_color"`
	Uppercase        bool    `toml:"uppercase"`
	TailHold         float64 `toml:"tail_hold"`
	PopInMs          int     `toml:"pop_in_ms"`
	PopOutMs         int     `toml:"pop_out_ms"`
	PopOutlineExtra  int     `toml:"pop_outline_extra"`
	PopBlur          float64 `toml:"pop_blur"`
}

// Default returns the stock style: three uppercase Montserrat words per
// caption with an amber highlight on a 1080x1920 canvas.
func Default() Style {
	return Style{
		WordsPerCaption:  3,
		Font:             "Montserrat",
		FontSize:         92,
		OutlineWidth:     7,
		ShadowDepth:      0,
		MarginVertical:   400,
		MarginHorizontal: 70,
		ActiveColor:      "#FFB117",
		InactiveColor:    "#FFFFFF",
		OutlineColor:     "#000000",
		Uppercase:        true,
		TailHold:         0,
		PopInMs:          90,
		PopOutMs:         180,
		PopOutlineExtra:  3,
		PopBlur:          0.8,
	}
}

// Load reads a TOML style file and lays it over the defaults, so a file
// only needs the keys it wants to change.
func Load(path string) (Style, error) {
	style := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("failed to read style file: %w", err)
	}
	if err := toml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("failed to parse style file: %w", err)
	}
	if err := style.Validate(); err != nil {
		return Style{}, fmt.Errorf("invalid style file %s: %w", path, err)
	}
	return style, nil
}

// CreateSample writes a commented style file carrying every default.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, sampleStyle, 0644); err != nil {
		return fmt.Errorf("failed to write style file: %w", err)
	}
	return nil
}
