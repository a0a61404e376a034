package cli

import "testing"

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"clip.mp4", ".ass", "clip.ass"},
		{"clip.mp4", ".words.json", "clip.words.json"},
		{"clip.words.json", ".ass", "clip.words.ass"},
		{"noext", ".ass", "noext.ass"},
		{"dir/nested/file.mp3", ".wav", "dir/nested/file.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := replaceExt(tt.path, tt.ext); got != tt.want {
				t.Errorf("replaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}

func TestCaptionCount(t *testing.T) {
	tests := []struct {
		words      int
		perCaption int
		want       int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{7, 3, 3},
		{5, 1, 5},
		{2, 0, 0},
	}

	for _, tt := range tests {
		if got := captionCount(tt.words, tt.perCaption); got != tt.want {
			t.Errorf("captionCount(%d, %d) = %d, want %d", tt.words, tt.perCaption, got, tt.want)
		}
	}
}
