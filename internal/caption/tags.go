package caption

import (
	"fmt"
	"strconv"
	"strings"

	"wordpop/internal/ass"
)

// pop carries the clamped pulse milestones for one event, in
// milliseconds from event start.
type pop struct {
	in  int
	out int
}

// clampPop fits the configured pulse into an event's lifetime: the peak
// lands at least 10ms before the event ends and the decay never runs
// past the end.
func clampPop(inMs, outMs, durationMs int) pop {
	in := min(inMs, max(0, durationMs-10))
	out := min(outMs, max(in, durationMs))
	return pop{in: in, out: out}
}

// activeTag styles the highlighted word: highlight color, base outline,
// then the transient outline/blur pulse. A pulse stage whose interval
// is empty is omitted entirely.
func (r *Renderer) activeTag(p pop) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `{\r%s\1c&H%s&\bord%d\blur0`, styleName, r.activeBGR, r.style.OutlineWidth)
	if p.in > 0 {
		fmt.Fprintf(&sb, `\t(0,%d,\bord%d\blur%s)`,
			p.in, r.style.OutlineWidth+r.style.PopOutlineExtra, formatBlur(r.style.PopBlur))
	}
	if p.out > p.in {
		fmt.Fprintf(&sb, `\t(%d,%d,\bord%d\blur0)`, p.in, p.out, r.style.OutlineWidth)
	}
	sb.WriteString("}")
	return sb.String()
}

// inactiveTag styles every other word of the block.
func (r *Renderer) inactiveTag() string {
	return fmt.Sprintf(`{\r%s\1c&H%s&\bord%d\blur0}`, styleName, r.inactiveBGR, r.style.OutlineWidth)
}

// eventText renders a block with the word at index active highlighted.
// Words are joined by plain spaces outside the override blocks so the
// renderer can still break lines between them.
func (r *Renderer) eventText(block []Word, active int, p pop) string {
	var sb strings.Builder
	sb.WriteString(`{\q2}{\fsp2}`)
	for i, w := range block {
		if i > 0 {
			sb.WriteString(" ")
		}
		if i == active {
			sb.WriteString(r.activeTag(p))
		} else {
			sb.WriteString(r.inactiveTag())
		}
		text := w.Text
		if r.style.Uppercase {
			text = strings.ToUpper(text)
		}
		sb.WriteString(ass.Escape(text))
	}
	return sb.String()
}

func formatBlur(blur float64) string {
	return strconv.FormatFloat(blur, 'g', -1, 64)
}
