package video

import "testing"

func TestParseProbe(t *testing.T) {
	data := []byte(`{
		"streams": [
			{
				"codec_type": "video",
				"codec_name": "h264",
				"width": 1080,
				"height": 1920,
				"avg_frame_rate": "30000/1001"
			},
			{
				"codec_type": "audio",
				"codec_name": "aac"
			}
		],
		"format": {
			"duration": "12.480000"
		}
	}`)

	info, err := parseProbe("clip.mp4", data)
	if err != nil {
		t.Fatalf("parseProbe() error: %v", err)
	}

	if info.Width != 1080 || info.Height != 1920 {
		t.Errorf("dimensions = %dx%d, want 1080x1920", info.Width, info.Height)
	}
	if !info.Portrait() {
		t.Error("1080x1920 should be portrait")
	}
	if info.Codec != "h264" {
		t.Errorf("Codec = %q, want h264", info.Codec)
	}
	if !info.HasAudio {
		t.Error("audio stream not detected")
	}
	if info.Duration.Seconds() != 12.48 {
		t.Errorf("Duration = %v, want 12.48s", info.Duration)
	}
	if info.FrameRate < 29.96 || info.FrameRate > 29.98 {
		t.Errorf("FrameRate = %v, want ~29.97", info.FrameRate)
	}
}

func TestParseProbeNoVideoStream(t *testing.T) {
	data := []byte(`{
		"streams": [{"codec_type": "audio", "codec_name": "mp3"}],
		"format": {"duration": "3.2"}
	}`)

	info, err := parseProbe("voice.mp3", data)
	if err != nil {
		t.Fatalf("parseProbe() error: %v", err)
	}
	if info.Width != 0 || info.Height != 0 {
		t.Errorf("audio-only file reports dimensions %dx%d", info.Width, info.Height)
	}
	if info.Portrait() {
		t.Error("audio-only file should not be portrait")
	}
	if !info.HasAudio {
		t.Error("audio stream not detected")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		rate string
		want float64
	}{
		{rate: "30/1", want: 30},
		{rate: "25", want: 25},
		{rate: "0/0", want: 0},
		{rate: "", want: 0},
		{rate: "nonsense", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			if got := parseFrameRate(tt.rate); got != tt.want {
				t.Errorf("parseFrameRate(%q) = %v, want %v", tt.rate, got, tt.want)
			}
		})
	}
}
