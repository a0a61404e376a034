package config

import (
	"errors"
	"fmt"
)

// Validate checks the structural constraints of a style. Color strings
// are resolved, and therefore checked, when a renderer is built.
func (s Style) Validate() error {
	if s.WordsPerCaption < 1 {
		return fmt.Errorf("words_per_caption must be at least 1, got %d", s.WordsPerCaption)
	}
	if s.Font == "" {
		return errors.New("font must not be empty")
	}
	if s.FontSize < 1 {
		return fmt.Errorf("font_size must be positive, got %d", s.FontSize)
	}
	if s.OutlineWidth < 0 {
		return fmt.Errorf("outline_width must not be negative, got %d", s.OutlineWidth)
	}
	if s.ShadowDepth < 0 {
		return fmt.Errorf("shadow_depth must not be negative, got %d", s.ShadowDepth)
	}
	if s.MarginVertical < 0 {
		return fmt.Errorf("margin_vertical must not be negative, got %d", s.MarginVertical)
	}
	if s.MarginHorizontal < 0 {
		return fmt.Errorf("margin_horizontal must not be negative, got %d", s.MarginHorizontal)
	}
	if s.TailHold < 0 {
		return fmt.Errorf("tail_hold must not be negative, got %v", s.TailHold)
	}
	if s.PopInMs < 0 {
		return fmt.Errorf("pop_in_ms must not be negative, got %d", s.PopInMs)
	}
	if s.PopOutMs < 0 {
		return fmt.Errorf("pop_out_ms must not be negative, got %d", s.PopOutMs)
	}
	if s.PopOutlineExtra < 0 {
		return fmt.Errorf("pop_outline_extra must not be negative, got %d", s.PopOutlineExtra)
	}
	if s.PopBlur < 0 {
		return fmt.Errorf("pop_blur must not be negative, got %v", s.PopBlur)
	}
	return nil
}
