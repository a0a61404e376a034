package caption

import "math"

// window is the interval during which one word of a block is the
// active one.
type window struct {
	start float64
	end   float64
}

// blockWords partitions words into runs of at most size, in input
// order. The last run may be shorter. size must be positive.
func blockWords(words []Word, size int) [][]Word {
	var blocks [][]Word
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		blocks = append(blocks, words[i:end])
	}
	return blocks
}

// windows computes each word's active interval within a block: a word
// stays active until the next word starts, and the last word holds
// until the block ends plus tailHold. A window that would collapse or
// run backwards is widened to at least a centisecond.
func windows(block []Word, tailHold float64) []window {
	if len(block) == 0 {
		return nil
	}
	blockEnd := block[len(block)-1].End
	out := make([]window, len(block))
	for k, w := range block {
		start := w.Start
		end := blockEnd + tailHold
		if k < len(block)-1 {
			end = block[k+1].Start
		}
		if end <= start {
			end = math.Max(start+0.01, w.End)
		}
		out[k] = window{start: start, end: end}
	}
	return out
}
