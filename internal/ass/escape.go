package ass

import "strings"

// Escape neutralizes override-block syntax in caption text. Backslashes
// are doubled before the braces are escaped, otherwise the backslashes
// introduced for the braces would be doubled again.
func Escape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "{", `\{`)
	text = strings.ReplaceAll(text, "}", `\}`)
	return text
}
