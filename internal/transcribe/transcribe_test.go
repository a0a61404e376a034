package transcribe

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"wordpop/internal/audio"
	"wordpop/internal/caption"
)

// stubTranscriber returns canned results per audio path.
type stubTranscriber struct {
	mu    sync.Mutex
	calls []string
	fn    func(path string) (*Result, error)
}

func (s *stubTranscriber) Transcribe(ctx context.Context, path string) (*Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, path)
	s.mu.Unlock()
	return s.fn(path)
}

func makeChunks(n int, each time.Duration) []audio.Chunk {
	chunks := make([]audio.Chunk, n)
	for i := range chunks {
		chunks[i] = audio.Chunk{
			Path:  fmt.Sprintf("chunk_%03d.mp3", i),
			Index: i,
			Start: time.Duration(i) * each,
			End:   time.Duration(i+1) * each,
		}
	}
	return chunks
}

func TestChunkedShiftsAndOrders(t *testing.T) {
	chunks := makeChunks(3, 10*time.Second)
	stub := &stubTranscriber{
		fn: func(path string) (*Result, error) {
			// slow down the first chunk so it finishes last
			if path == chunks[0].Path {
				time.Sleep(30 * time.Millisecond)
			}
			return &Result{
				Words:    []caption.Word{{Text: path, Start: 0.5, End: 1.0}},
				Language: "english",
			}, nil
		},
	}

	result, err := Chunked(context.Background(), stub, chunks, 2)
	if err != nil {
		t.Fatalf("Chunked() error: %v", err)
	}

	if len(result.Words) != 3 {
		t.Fatalf("got %d words, want 3", len(result.Words))
	}
	for i, w := range result.Words {
		if w.Text != chunks[i].Path {
			t.Errorf("word %d came from %q, want chunk order %q", i, w.Text, chunks[i].Path)
		}
		wantStart := float64(i)*10 + 0.5
		if w.Start != wantStart {
			t.Errorf("word %d start = %v, want offset-shifted %v", i, w.Start, wantStart)
		}
		if w.End != wantStart+0.5 {
			t.Errorf("word %d end = %v, want %v", i, w.End, wantStart+0.5)
		}
	}
	if result.Duration != 30*time.Second {
		t.Errorf("Duration = %v, want 30s", result.Duration)
	}
	if result.Language != "english" {
		t.Errorf("Language = %q, want english", result.Language)
	}
}

func TestChunkedEmpty(t *testing.T) {
	stub := &stubTranscriber{fn: func(string) (*Result, error) {
		return nil, errors.New("should not be called")
	}}

	result, err := Chunked(context.Background(), stub, nil, 3)
	if err != nil {
		t.Fatalf("Chunked() error: %v", err)
	}
	if len(result.Words) != 0 {
		t.Errorf("empty chunk list produced words: %+v", result.Words)
	}
	if len(stub.calls) != 0 {
		t.Errorf("transcriber called %d times for no chunks", len(stub.calls))
	}
}

func TestChunkedSingle(t *testing.T) {
	chunks := makeChunks(1, 10*time.Second)
	stub := &stubTranscriber{fn: func(string) (*Result, error) {
		return &Result{Words: []caption.Word{{Text: "hi", Start: 0.2, End: 0.6}}}, nil
	}}

	result, err := Chunked(context.Background(), stub, chunks, 4)
	if err != nil {
		t.Fatalf("Chunked() error: %v", err)
	}
	want := []caption.Word{{Text: "hi", Start: 0.2, End: 0.6}}
	if !reflect.DeepEqual(result.Words, want) {
		t.Errorf("Words = %+v, want %+v (no shift for the first chunk)", result.Words, want)
	}
}

func TestChunkedFirstErrorWins(t *testing.T) {
	chunks := makeChunks(4, time.Minute)
	boom := errors.New("rate limited")
	stub := &stubTranscriber{
		fn: func(path string) (*Result, error) {
			if path == chunks[1].Path {
				return nil, boom
			}
			return &Result{}, nil
		},
	}

	_, err := Chunked(context.Background(), stub, chunks, 1)
	if err == nil {
		t.Fatal("Chunked() expected error, got nil")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
	// sequential worker stops after the failing chunk
	if len(stub.calls) != 2 {
		t.Errorf("transcriber called %d times, want 2", len(stub.calls))
	}
}

func TestChunkedRejectsBadIndexes(t *testing.T) {
	chunks := []audio.Chunk{{Path: "a.mp3", Index: 7}}
	stub := &stubTranscriber{fn: func(string) (*Result, error) {
		return &Result{}, nil
	}}

	if _, err := Chunked(context.Background(), stub, chunks, 1); err == nil {
		t.Error("Chunked() accepted an out-of-range chunk index")
	}
}

func TestNormalize(t *testing.T) {
	words := []caption.Word{
		{Text: "Hello", Start: 0.1, End: 0.4},
		{Text: "WORLD", Start: 0.4, End: 0.9},
	}

	got := Normalize(words, true, 0.25)
	if got[0].Text != "hello" || got[1].Text != "world" {
		t.Errorf("lowercase not applied: %+v", got)
	}
	if got[0].Start != 0.25 {
		t.Errorf("first start = %v, want raised to 0.25", got[0].Start)
	}
	if got[1].Start != 0.4 {
		t.Errorf("second start = %v, want untouched 0.4", got[1].Start)
	}
	// originals stay untouched
	if words[0].Text != "Hello" || words[0].Start != 0.1 {
		t.Errorf("input mutated: %+v", words[0])
	}

	kept := Normalize(words, false, 0)
	if kept[0].Text != "Hello" || kept[0].Start != 0.1 {
		t.Errorf("Normalize without options changed words: %+v", kept[0])
	}

	if empty := Normalize(nil, true, 1); len(empty) != 0 {
		t.Errorf("Normalize(nil) = %+v", empty)
	}
}

func TestSpreadWords(t *testing.T) {
	words := spreadWords("  one two   three four ", 2, 4)
	if len(words) != 4 {
		t.Fatalf("got %d words, want 4", len(words))
	}
	if words[0].Start != 2 || words[0].End != 2.5 {
		t.Errorf("word 0 = %+v, want [2, 2.5]", words[0])
	}
	if words[3].Start != 3.5 || words[3].End != 4 {
		t.Errorf("word 3 = %+v, want [3.5, 4]", words[3])
	}

	if got := spreadWords("   ", 0, 1); got != nil {
		t.Errorf("blank text produced words: %+v", got)
	}

	// inverted interval collapses instead of running backwards
	inverted := spreadWords("a b", 5, 3)
	for _, w := range inverted {
		if w.End < w.Start {
			t.Errorf("word runs backwards: %+v", w)
		}
	}
}
