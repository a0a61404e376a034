package caption

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// UnmarshalJSON fills a Word one field at a time: missing, null, or
// mistyped fields fall back to zero values instead of failing the whole
// file, numbers may arrive as strings, and word tokens as numbers.
// Transcription output is messy.
func (w *Word) UnmarshalJSON(data []byte) error {
	var fields struct {
		Text  json.RawMessage `json:"word"`
		Start json.RawMessage `json:"start"`
		End   json.RawMessage `json:"end"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	w.Text = flexibleString(fields.Text)
	w.Start = flexibleSeconds(fields.Start)
	w.End = flexibleSeconds(fields.End)
	return nil
}

func flexibleString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return ""
}

func flexibleSeconds(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
			return v
		}
	}
	return 0
}

// ParseWords decodes a JSON array of word timing objects.
func ParseWords(data []byte) ([]Word, error) {
	var words []Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse words: %w", err)
	}
	return words, nil
}

// LoadWords reads word timings from a JSON file.
func LoadWords(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}
	return ParseWords(data)
}
