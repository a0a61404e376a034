package caption

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseWords(t *testing.T) {
	data := `[
		{"word": "hi", "start": 0.0, "end": 0.4},
		{"word": "there", "start": 0.4, "end": 1.0}
	]`
	words, err := ParseWords([]byte(data))
	if err != nil {
		t.Fatalf("ParseWords() error: %v", err)
	}
	want := []Word{
		{Text: "hi", Start: 0, End: 0.4},
		{Text: "there", Start: 0.4, End: 1.0},
	}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("ParseWords() = %+v, want %+v", words, want)
	}
}

func TestParseWordsPermissive(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Word
	}{
		{
			name: "empty object",
			data: `[{}]`,
			want: Word{},
		},
		{
			name: "null fields",
			data: `[{"word": null, "start": null, "end": null}]`,
			want: Word{},
		},
		{
			name: "string numbers",
			data: `[{"word": "hi", "start": "1.5", "end": "2.25"}]`,
			want: Word{Text: "hi", Start: 1.5, End: 2.25},
		},
		{
			name: "padded string number",
			data: `[{"word": "hi", "start": " 3.5 ", "end": 4}]`,
			want: Word{Text: "hi", Start: 3.5, End: 4},
		},
		{
			name: "numeric word token",
			data: `[{"word": 42, "start": 0, "end": 1}]`,
			want: Word{Text: "42", Start: 0, End: 1},
		},
		{
			name: "unparseable start",
			data: `[{"word": "x", "start": "soon", "end": 1}]`,
			want: Word{Text: "x", Start: 0, End: 1},
		},
		{
			name: "mistyped field",
			data: `[{"word": "x", "start": {"nested": true}, "end": 1}]`,
			want: Word{Text: "x", Start: 0, End: 1},
		},
		{
			name: "extra fields ignored",
			data: `[{"word": "x", "start": 0.5, "end": 1, "confidence": 0.97, "speaker": 2}]`,
			want: Word{Text: "x", Start: 0.5, End: 1},
		},
		{
			name: "null entry",
			data: `[null]`,
			want: Word{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := ParseWords([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseWords() error: %v", err)
			}
			if len(words) != 1 {
				t.Fatalf("ParseWords() returned %d words, want 1", len(words))
			}
			if words[0] != tt.want {
				t.Errorf("ParseWords()[0] = %+v, want %+v", words[0], tt.want)
			}
		})
	}
}

func TestParseWordsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not an array",
			data: `{"word": "hi"}`,
		},
		{
			name: "scalar entry",
			data: `[5]`,
		},
		{
			name: "malformed json",
			data: `[{"word": "hi"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseWords([]byte(tt.data)); err == nil {
				t.Error("ParseWords() expected error, got nil")
			}
		})
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	data := `[{"word": "go", "start": 0.1, "end": 0.5}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write words file: %v", err)
	}

	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords() error: %v", err)
	}
	if len(words) != 1 || words[0].Text != "go" {
		t.Errorf("LoadWords() = %+v, want one word %q", words, "go")
	}

	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadWords() of missing file expected error, got nil")
	}
}
