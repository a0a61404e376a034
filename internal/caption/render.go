package caption

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"wordpop/internal/ass"
	"wordpop/internal/config"
)

// styleName is the single ASS style every dialogue line references.
const styleName = "Cap"

const headerTemplate = `[Script Info]
ScriptType: v4.00+
PlayResX: 1080
PlayResY: 1920
WrapStyle: 2
ScaledBorderAndShadow: yes
YCbCr Matrix: TV.709

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: %s,%s,%d,&H%s,&H%s,&H%s,&H64000000,-1,0,0,0,100,100,0,0,1,%d,%d,2,%d,%d,%d,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// Renderer produces ASS documents for one resolved style.
type Renderer struct {
	style       config.Style
	activeBGR   string
	inactiveBGR string
	header      string
}

// NewRenderer validates the style and resolves its colors once.
// Invalid colors fail here, named after the offending style field.
func NewRenderer(style config.Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	activeBGR, err := ass.BGR(style.ActiveColor)
	if err != nil {
		return nil, fmt.Errorf("active_color: %w", err)
	}
	inactiveBGR, err := ass.BGR(style.InactiveColor)
	if err != nil {
		return nil, fmt.Errorf("inactive_color: %w", err)
	}
	inactiveBGRA, err := ass.OpaqueBGRA(style.InactiveColor)
	if err != nil {
		return nil, fmt.Errorf("inactive_color: %w", err)
	}
	outlineBGRA, err := ass.OpaqueBGRA(style.OutlineColor)
	if err != nil {
		return nil, fmt.Errorf("outline_color: %w", err)
	}

	header := fmt.Sprintf(headerTemplate,
		styleName, style.Font, style.FontSize,
		inactiveBGRA, inactiveBGRA, outlineBGRA,
		style.OutlineWidth, style.ShadowDepth,
		style.MarginHorizontal, style.MarginHorizontal, style.MarginVertical)

	return &Renderer{
		style:       style,
		activeBGR:   activeBGR,
		inactiveBGR: inactiveBGR,
		header:      header,
	}, nil
}

// Events expands words into one dialogue event per word: the whole
// block's text repeats on each event with a different word active. The
// duplication is deliberate; it is what moves the highlight.
func (r *Renderer) Events(words []Word) []Event {
	var events []Event
	for _, block := range blockWords(words, r.style.WordsPerCaption) {
		wins := windows(block, r.style.TailHold)
		for k := range block {
			durationMs := int(math.Round((wins[k].end - wins[k].start) * 1000))
			p := clampPop(r.style.PopInMs, r.style.PopOutMs, durationMs)
			events = append(events, Event{
				Start: wins[k].start,
				End:   wins[k].end,
				Text:  r.eventText(block, k, p),
			})
		}
	}
	return events
}

// Render produces the complete script. Empty input yields just the
// header, a valid document with no dialogue lines.
func (r *Renderer) Render(words []Word) string {
	var sb strings.Builder
	sb.WriteString(r.header)
	for _, event := range r.Events(words) {
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			ass.Timestamp(event.Start), ass.Timestamp(event.End), styleName, event.Text)
	}
	return sb.String()
}

// WriteFile renders words and writes the document to path, creating
// parent directories as needed.
func (r *Renderer) WriteFile(words []Word, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.Render(words)), 0644); err != nil {
		return fmt.Errorf("failed to write captions: %w", err)
	}
	return nil
}
