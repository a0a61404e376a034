package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"wordpop/internal/audio"
	"wordpop/internal/caption"
)

// GeminiTranscriber prompts a Gemini model for word-level timestamps.
// Timing quality depends on the model; whisper is the safer default for
// tight karaoke sync.
type GeminiTranscriber struct {
	client *genai.Client
	model  string
	opts   Options
}

// NewGeminiTranscriber builds a Gemini-backed transcriber. The default
// model is gemini-2.5-flash.
func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiTranscriber{
		client: client,
		model:  model,
		opts:   opts,
	}, nil
}

// Transcribe uploads the audio, prompts for a word-timing array, and
// parses the reply.
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploaded, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}
	defer func() {
		_, _ = t.client.Files.Delete(ctx, uploaded.Name, nil)
	}()

	parts := []*genai.Part{
		genai.NewPartFromText(t.wordPrompt()),
		genai.NewPartFromURI(uploaded.URI, uploaded.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	reply, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	words, err := parseGeminiWords(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}

	duration, _ := audio.Duration(audioPath)

	return &Result{
		Words:    words,
		Language: t.opts.Language,
		Duration: duration,
	}, nil
}

func (t *GeminiTranscriber) wordPrompt() string {
	var sb strings.Builder
	sb.WriteString("Transcribe this audio word by word. ")
	sb.WriteString("For every spoken word, give the moment it starts and the moment it ends. ")
	sb.WriteString("Format your response as a JSON array of objects with 'word', 'start', and 'end' fields, ")
	sb.WriteString("where 'start' and 'end' are timestamps in seconds (as numbers). ")
	if t.opts.Language != "" {
		fmt.Fprintf(&sb, "The audio is in %s. ", t.opts.Language)
	}
	if t.opts.Prompt != "" {
		sb.WriteString(t.opts.Prompt)
		sb.WriteString(" ")
	}
	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")
	return sb.String()
}

// parseGeminiWords collects the reply text and decodes the word array,
// tolerating the markdown fences models wrap JSON in.
func parseGeminiWords(reply *genai.GenerateContentResponse) ([]caption.Word, error) {
	if reply == nil || len(reply.Candidates) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	var text string
	for _, candidate := range reply.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text in response")
	}

	cleaned := stripFences(text)
	var raw []caption.Word
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w (response: %s)", err, truncate(cleaned, 200))
	}

	words := make([]caption.Word, 0, len(raw))
	for _, w := range raw {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

var fencePattern = regexp.MustCompile("```(?:json)?\\s*")

// stripFences removes markdown code fences around a JSON payload.
func stripFences(s string) string {
	s = fencePattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
