// Package ass holds the small codecs shared by everything that emits
// Advanced SubStation Alpha text: timestamps, colors, and escaping.
package ass

import (
	"fmt"
	"math"
)

// Timestamp converts fractional seconds to the H:MM:SS.CC form used in
// dialogue lines. Centiseconds round half away from zero; hours carry
// no zero padding.
func Timestamp(seconds float64) string {
	cs := int(math.Round(seconds * 100))
	hours := cs / 360000
	minutes := (cs / 6000) % 60
	secs := (cs / 100) % 60
	centis := cs % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}
