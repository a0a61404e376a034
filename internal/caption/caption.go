// Package caption turns word-level speech timings into karaoke-style
// ASS captions: short blocks of words where the spoken word is
// highlighted and pulses while its neighbors stay muted.
package caption

// Word is a single transcribed token with its spoken interval in
// seconds. Sequences are consumed in the order given; nothing here
// re-sorts them.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Event is one timed dialogue line carrying a block's full text with
// exactly one word highlighted.
type Event struct {
	Start float64
	End   float64
	Text  string
}
