// Package audio prepares media for transcription: transcoding to small
// mono files, probing duration, and slicing long recordings into
// chunks.
package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "wordpop/internal/ffmpeg"
)

// Chunk is one slice of a longer recording, with its offsets into the
// original.
type Chunk struct {
	Path  string
	Index int
	Start time.Duration
	End   time.Duration
}

// TranscodeOptions describes the target encoding for Transcode.
type TranscodeOptions struct {
	Format     string // mp3, aac, flac or wav
	SampleRate int
	Channels   int
	Bitrate    string // lossy formats only, e.g. "64k"
}

// DefaultTranscodeOptions returns the settings used for transcription
// uploads: small mono mp3.
func DefaultTranscodeOptions() TranscodeOptions {
	return TranscodeOptions{
		Format:     "mp3",
		SampleRate: 16000,
		Channels:   1,
		Bitrate:    "64k",
	}
}

// Transcode converts any media file to a bare audio file, dropping
// video streams when the input has them.
func Transcode(ctx context.Context, inputPath, outputPath string, opts TranscodeOptions) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"vn": "",
		"ar": opts.SampleRate,
		"ac": opts.Channels,
	}
	switch opts.Format {
	case "mp3":
		kwargs["acodec"] = "libmp3lame"
	case "aac":
		kwargs["acodec"] = "aac"
	case "flac":
		kwargs["acodec"] = "flac"
	case "wav":
		kwargs["acodec"] = "pcm_s16le"
	default:
		return fmt.Errorf("unsupported audio format: %s", opts.Format)
	}
	if opts.Bitrate != "" && (opts.Format == "mp3" || opts.Format == "aac") {
		kwargs["b:a"] = opts.Bitrate
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	if err := ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run(); err != nil {
		return fmt.Errorf("failed to transcode audio: %w", err)
	}
	return nil
}

type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration reads a media file's length via ffprobe.
func Duration(path string) (time.Duration, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("file not found: %s", path)
	}
	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	out, err := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeFormat
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", probe.Format.Duration, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Split slices a recording into consecutive chunks of at most each,
// copying the codec rather than re-encoding. Chunks land in outputDir
// as <base>_chunk_NNN<ext>.
func Split(ctx context.Context, audioPath string, each time.Duration, outputDir string) ([]Chunk, error) {
	if each <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", each)
	}
	total, err := Duration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(audioPath)
	base := strings.TrimSuffix(filepath.Base(audioPath), ext)

	var chunks []Chunk
	for start := time.Duration(0); start < total; start += each {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + each
		if end > total {
			end = total
		}
		index := len(chunks)
		path := filepath.Join(outputDir, fmt.Sprintf("%s_chunk_%03d%s", base, index, ext))

		if err := ffmpeg.Input(audioPath).
			Output(path, ffmpeg.KwArgs{
				"ss": start.Seconds(),
				"t":  (end - start).Seconds(),
				"c":  "copy",
			}).
			OverWriteOutput().
			SetFfmpegPath(ffmpegPath).
			Run(); err != nil {
			return nil, fmt.Errorf("failed to cut chunk %d: %w", index, err)
		}

		chunks = append(chunks, Chunk{Path: path, Index: index, Start: start, End: end})
	}
	return chunks, nil
}

var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
}

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".wma":  true,
	".aiff": true,
}

// IsVideoFile reports whether path has a known video extension.
func IsVideoFile(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// IsAudioFile reports whether path has a known audio extension.
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

// IsMediaFile reports whether path looks like audio or video at all.
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
