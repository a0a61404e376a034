package transcribe

import (
	"strings"
	"testing"
	"time"
)

func TestParseVerboseWords(t *testing.T) {
	rawJSON := `{
		"task": "transcribe",
		"language": "english",
		"duration": 1.0,
		"text": "Hi there.",
		"words": [
			{"word": "Hi", "start": 0.0, "end": 0.4},
			{"word": "there.", "start": 0.4, "end": 1.0}
		],
		"segments": [
			{"id": 0, "start": 0.0, "end": 1.0, "text": " Hi there."}
		]
	}`

	result, err := parseVerboseWords(rawJSON, 0)
	if err != nil {
		t.Fatalf("parseVerboseWords() error: %v", err)
	}

	if len(result.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(result.Words))
	}
	if result.Words[0].Text != "Hi" || result.Words[0].Start != 0 || result.Words[0].End != 0.4 {
		t.Errorf("first word = %+v", result.Words[0])
	}
	if result.Words[1].Text != "there." {
		t.Errorf("second word = %+v", result.Words[1])
	}
	if result.Language != "english" {
		t.Errorf("Language = %q, want english", result.Language)
	}
	if result.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", result.Duration)
	}
}

func TestParseVerboseWordsSkipsBlankTokens(t *testing.T) {
	rawJSON := `{
		"words": [
			{"word": "  ", "start": 0.0, "end": 0.1},
			{"word": "ok", "start": 0.1, "end": 0.2}
		]
	}`

	result, err := parseVerboseWords(rawJSON, time.Second)
	if err != nil {
		t.Fatalf("parseVerboseWords() error: %v", err)
	}
	if len(result.Words) != 1 || result.Words[0].Text != "ok" {
		t.Errorf("Words = %+v, want just %q", result.Words, "ok")
	}
}

func TestParseVerboseWordsSegmentFallback(t *testing.T) {
	rawJSON := `{
		"text": "one two three four",
		"duration": 2.0,
		"segments": [
			{"start": 0.0, "end": 1.0, "text": " one two"},
			{"start": 1.0, "end": 2.0, "text": "three four"}
		]
	}`

	result, err := parseVerboseWords(rawJSON, 0)
	if err != nil {
		t.Fatalf("parseVerboseWords() error: %v", err)
	}

	if len(result.Words) != 4 {
		t.Fatalf("got %d words, want 4", len(result.Words))
	}
	// each segment's interval is split evenly across its tokens
	if result.Words[0].Start != 0 || result.Words[0].End != 0.5 {
		t.Errorf("word 0 = %+v, want [0, 0.5]", result.Words[0])
	}
	if result.Words[1].Start != 0.5 || result.Words[1].End != 1.0 {
		t.Errorf("word 1 = %+v, want [0.5, 1.0]", result.Words[1])
	}
	if result.Words[2].Start != 1.0 || result.Words[3].End != 2.0 {
		t.Errorf("second segment words = %+v, %+v", result.Words[2], result.Words[3])
	}
}

func TestParseVerboseWordsTextFallback(t *testing.T) {
	rawJSON := `{"text": "a b c d", "duration": 4.0}`

	result, err := parseVerboseWords(rawJSON, 0)
	if err != nil {
		t.Fatalf("parseVerboseWords() error: %v", err)
	}
	if len(result.Words) != 4 {
		t.Fatalf("got %d words, want 4", len(result.Words))
	}
	if result.Words[3].Start != 3.0 || result.Words[3].End != 4.0 {
		t.Errorf("last word = %+v, want [3, 4]", result.Words[3])
	}
}

func TestParseVerboseWordsErrors(t *testing.T) {
	tests := []struct {
		name    string
		rawJSON string
	}{
		{
			name:    "empty response",
			rawJSON: "",
		},
		{
			name:    "nothing usable",
			rawJSON: "{}",
		},
		{
			name:    "malformed json",
			rawJSON: `{"words": [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseVerboseWords(tt.rawJSON, time.Second); err == nil {
				t.Error("parseVerboseWords() expected error, got nil")
			}
		})
	}
}

func TestNewOpenAITranscriberRequiresKey(t *testing.T) {
	if _, err := NewOpenAITranscriber("", Options{}); err == nil {
		t.Error("NewOpenAITranscriber() accepted an empty API key")
	}

	tr, err := NewOpenAITranscriber("sk-test", Options{})
	if err != nil {
		t.Fatalf("NewOpenAITranscriber() error: %v", err)
	}
	if !strings.Contains(tr.model, "whisper") {
		t.Errorf("default model = %q, want a whisper model", tr.model)
	}
}
