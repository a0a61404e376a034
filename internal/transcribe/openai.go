package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"wordpop/internal/audio"
	"wordpop/internal/caption"
)

// OpenAITranscriber asks the OpenAI audio API for word-level
// timestamps.
type OpenAITranscriber struct {
	client openai.Client
	model  string
	opts   Options
}

// NewOpenAITranscriber requires an API key. The default model is
// whisper-1, the model that exposes word timestamp granularity.
func NewOpenAITranscriber(apiKey string, opts Options) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}
	return &OpenAITranscriber{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		opts:   opts,
	}, nil
}

// Transcribe uploads one audio file and parses word timings out of the
// verbose response.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	// best effort; the response usually carries its own duration
	duration, _ := audio.Duration(audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word", "segment"},
	}
	if t.opts.Language != "" {
		params.Language = openai.String(t.opts.Language)
	}
	if t.opts.Prompt != "" {
		params.Prompt = openai.String(t.opts.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	result, err := parseVerboseWords(resp.RawJSON(), duration)
	if err != nil {
		return nil, err
	}
	if result.Language == "" {
		result.Language = t.opts.Language
	}
	return result, nil
}

type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperVerbose struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Words    []whisperWord    `json:"words"`
	Segments []whisperSegment `json:"segments"`
}

// parseVerboseWords pulls word timings out of a verbose_json payload.
// Models without word granularity still return segments, so segment
// text spread evenly over the segment interval is the fallback, and
// bare text spread over the whole clip the last resort.
func parseVerboseWords(rawJSON string, fallbackDuration time.Duration) (*Result, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty transcription response")
	}
	var verbose whisperVerbose
	if err := json.Unmarshal([]byte(rawJSON), &verbose); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	duration := fallbackDuration
	if verbose.Duration > 0 {
		duration = time.Duration(verbose.Duration * float64(time.Second))
	}
	result := &Result{Language: verbose.Language, Duration: duration}

	if len(verbose.Words) > 0 {
		for _, w := range verbose.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			result.Words = append(result.Words, caption.Word{Text: text, Start: w.Start, End: w.End})
		}
		return result, nil
	}

	for _, seg := range verbose.Segments {
		result.Words = append(result.Words, spreadWords(seg.Text, seg.Start, seg.End)...)
	}
	if len(result.Words) > 0 {
		return result, nil
	}

	if text := strings.TrimSpace(verbose.Text); text != "" {
		if words := spreadWords(text, 0, duration.Seconds()); len(words) > 0 {
			result.Words = words
			return result, nil
		}
	}
	return nil, fmt.Errorf("no words, segments or text in response")
}
