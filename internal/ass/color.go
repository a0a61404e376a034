package ass

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a color string is not six hex digits
// with an optional leading '#'.
var ErrInvalidColor = errors.New("invalid color")

// OpaqueBGRA converts an RGB hex string to the AABBGGRR form used in
// style definitions, with a fully opaque alpha byte.
func OpaqueBGRA(rgb string) (string, error) {
	r, g, b, err := splitRGB(rgb)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("00%02X%02X%02X", b, g, r), nil
}

// BGR converts an RGB hex string to the bare BBGGRR form used in inline
// \1c override tags.
func BGR(rgb string) (string, error) {
	r, g, b, err := splitRGB(rgb)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02X%02X%02X", b, g, r), nil
}

func splitRGB(rgb string) (r, g, b uint8, err error) {
	digits := strings.TrimPrefix(rgb, "#")
	if len(digits) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, rgb)
	}
	v, perr := strconv.ParseUint(digits, 16, 32)
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, rgb)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
