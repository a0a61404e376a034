// Package transcribe produces word-level speech timings from audio
// through hosted speech-to-text providers.
package transcribe

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wordpop/internal/audio"
	"wordpop/internal/caption"
)

// Result is one transcription: every spoken word with its interval,
// plus whatever metadata the provider reported.
type Result struct {
	Words    []caption.Word
	Language string
	Duration time.Duration
}

// Transcriber converts a single audio file into word timings.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// Provider selects the hosted speech-to-text backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options tune a transcriber. Zero values mean provider defaults.
type Options struct {
	Language string // source language hint
	Model    string
	Prompt   string // extra guidance passed to the model
}

// New builds a transcriber for the given provider.
func New(ctx context.Context, provider Provider, apiKey string, opts Options) (Transcriber, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranscriber(apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// Chunked transcribes chunks with a bounded worker pool, shifts each
// chunk's word timings by the chunk offset, and reassembles the words
// in chunk order, so the output is deterministic regardless of
// scheduling. The first failure cancels the remaining work.
func Chunked(ctx context.Context, t Transcriber, chunks []audio.Chunk, concurrency int) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}
	if concurrency <= 0 {
		concurrency = 3
	}
	for _, chunk := range chunks {
		if chunk.Index < 0 || chunk.Index >= len(chunks) {
			return nil, fmt.Errorf("chunk index %d out of range", chunk.Index)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	work := make(chan audio.Chunk, len(chunks))
	for _, chunk := range chunks {
		work <- chunk
	}
	close(work)

	perChunk := make([][]caption.Word, len(chunks))
	languages := make([]string, len(chunks))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	for range concurrency {
		wg.Go(func() {
			for chunk := range work {
				if ctx.Err() != nil {
					return
				}
				result, err := t.Transcribe(ctx, chunk.Path)
				if err != nil {
					fail(fmt.Errorf("chunk %d failed: %w", chunk.Index, err))
					return
				}
				offset := chunk.Start.Seconds()
				words := make([]caption.Word, len(result.Words))
				for i, w := range result.Words {
					words[i] = caption.Word{
						Text:  w.Text,
						Start: w.Start + offset,
						End:   w.End + offset,
					}
				}
				perChunk[chunk.Index] = words
				languages[chunk.Index] = result.Language
			}
		})
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	merged := &Result{Duration: chunks[len(chunks)-1].End}
	for _, words := range perChunk {
		merged.Words = append(merged.Words, words...)
	}
	for _, language := range languages {
		if language != "" {
			merged.Language = language
			break
		}
	}
	return merged, nil
}

// Normalize applies the standard cleanup before rendering or saving:
// optionally lowercase every token, and raise the first word's start to
// initStart so captions never appear before that moment.
func Normalize(words []caption.Word, lowercase bool, initStart float64) []caption.Word {
	out := make([]caption.Word, len(words))
	copy(out, words)
	if lowercase {
		for i := range out {
			out[i].Text = strings.ToLower(out[i].Text)
		}
	}
	if len(out) > 0 && out[0].Start < initStart {
		out[0].Start = initStart
	}
	return out
}

// spreadWords distributes tokens evenly across an interval, for
// providers that return text without per-word timing.
func spreadWords(text string, start, end float64) []caption.Word {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	if end < start {
		end = start
	}
	step := (end - start) / float64(len(tokens))
	words := make([]caption.Word, len(tokens))
	for i, token := range tokens {
		words[i] = caption.Word{
			Text:  token,
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		}
	}
	return words
}
