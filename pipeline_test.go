package podgen_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/middlemost/podgen"
	"github.com/middlemost/podgen/mock"
)

// Ensure the pipeline sequences all stages and returns a completed record.
func TestPipeline_Run(t *testing.T) {
	var created []byte
	var voiceCalls []string

	p := NewPipeline()
	p.TextExtractor.ExtractTextFn = func(ctx context.Context, doc *podgen.Document) (string, error) {
		return "--- PAGE 1 ---\nIntro text\n--- PAGE 2 ---\nMore text\n", nil
	}
	p.SummaryService.SummarizeFn = func(ctx context.Context, text string) (string, error) {
		if text != "Intro text More text" {
			t.Fatalf("unexpected summarizer input: %q", text)
		}
		return "SUMMARY", nil
	}
	p.ScriptService.WriteScriptFn = func(ctx context.Context, summary string) (string, error) {
		if summary != "SUMMARY" {
			t.Fatalf("unexpected script input: %q", summary)
		}
		return "Alex: line1\nJordan: line2", nil
	}
	p.SpeechService.SynthesizeSpeechFn = func(ctx context.Context, voiceID, text string) (io.ReadCloser, error) {
		voiceCalls = append(voiceCalls, voiceID)
		return io.NopCloser(strings.NewReader(text + "|")), nil
	}
	p.FileService.CreateFileFn = func(ctx context.Context, f *podgen.File, r io.Reader) error {
		buf, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		created = buf
		f.Size = int64(len(buf))
		return nil
	}
	p.PodcastService.CreatePodcastFn = func(ctx context.Context, podcast *podgen.Podcast) error {
		return nil
	}

	doc := &podgen.Document{Name: "paper.pdf", ContentType: "application/pdf", Data: []byte("PDF")}
	podcast, err := p.Run(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}

	// Artifact bytes equal the concatenation of both calls, in script order.
	if string(created) != "line1|line2|" {
		t.Fatalf("unexpected artifact bytes: %q", created)
	}
	if len(voiceCalls) != 2 || voiceCalls[0] != "voice-alex" || voiceCalls[1] != "voice-jordan" {
		t.Fatalf("unexpected voice calls: %v", voiceCalls)
	}

	// Record fields.
	if podcast.ID == "" {
		t.Fatal("expected generated id")
	} else if podcast.FileName != "paper.pdf" {
		t.Fatalf("unexpected file name: %q", podcast.FileName)
	} else if podcast.Summary != "SUMMARY" {
		t.Fatalf("unexpected summary: %q", podcast.Summary)
	} else if podcast.AudioPath != "podcast_0001.mp3" {
		t.Fatalf("unexpected audio path: %q", podcast.AudioPath)
	} else if podcast.Status != podgen.PodcastStatusCompleted {
		t.Fatalf("unexpected status: %q", podcast.Status)
	}
}

// Ensure a stage failure short-circuits the remaining stages.
func TestPipeline_Run_ErrSummarize(t *testing.T) {
	p := NewPipeline()
	p.TextExtractor.ExtractTextFn = func(ctx context.Context, doc *podgen.Document) (string, error) {
		return "text", nil
	}
	p.SummaryService.SummarizeFn = func(ctx context.Context, text string) (string, error) {
		return "", podgen.ErrModelUnavailable
	}
	p.ScriptService.WriteScriptFn = func(ctx context.Context, summary string) (string, error) {
		t.Fatal("script service should not be called")
		return "", nil
	}

	_, err := p.Run(context.Background(), &podgen.Document{Name: "a.txt"})
	if !errors.Is(err, podgen.ErrModelUnavailable) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Ensure a script with no usable dialogue fails the run.
func TestPipeline_Run_ErrEmptyScript(t *testing.T) {
	p := NewPipeline()
	p.TextExtractor.ExtractTextFn = func(ctx context.Context, doc *podgen.Document) (string, error) {
		return "text", nil
	}
	p.SummaryService.SummarizeFn = func(ctx context.Context, text string) (string, error) {
		return "SUMMARY", nil
	}
	p.ScriptService.WriteScriptFn = func(ctx context.Context, summary string) (string, error) {
		return "Narrator: not a known host\n", nil
	}
	p.SpeechService.SynthesizeSpeechFn = func(ctx context.Context, voiceID, text string) (io.ReadCloser, error) {
		t.Fatal("speech service should not be called")
		return nil, nil
	}

	var log bytes.Buffer
	p.LogOutput = &log

	_, err := p.Run(context.Background(), &podgen.Document{Name: "a.txt"})
	if !errors.Is(err, podgen.ErrEmptyScript) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(log.String(), "dropped script lines") {
		t.Fatalf("expected dropped-line log, got: %q", log.String())
	}
}

// Ensure a mid-sequence synthesis failure persists no artifact at all.
func TestPipeline_Run_ErrSynthesisAtomicity(t *testing.T) {
	var calls int

	p := NewPipeline()
	p.TextExtractor.ExtractTextFn = func(ctx context.Context, doc *podgen.Document) (string, error) {
		return "text", nil
	}
	p.SummaryService.SummarizeFn = func(ctx context.Context, text string) (string, error) {
		return "SUMMARY", nil
	}
	p.ScriptService.WriteScriptFn = func(ctx context.Context, summary string) (string, error) {
		return "Alex: one\nJordan: two\nAlex: three", nil
	}
	p.SpeechService.SynthesizeSpeechFn = func(ctx context.Context, voiceID, text string) (io.ReadCloser, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("provider unavailable")
		}
		return io.NopCloser(strings.NewReader("audio")), nil
	}
	p.FileService.CreateFileFn = func(ctx context.Context, f *podgen.File, r io.Reader) error {
		t.Fatal("no artifact may be persisted after a synthesis failure")
		return nil
	}
	p.PodcastService.CreatePodcastFn = func(ctx context.Context, podcast *podgen.Podcast) error {
		t.Fatal("no record may be persisted after a synthesis failure")
		return nil
	}

	_, err := p.Run(context.Background(), &podgen.Document{Name: "a.txt"})
	if !errors.Is(err, podgen.ErrSynthesis) {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("unexpected synthesis calls: %d", calls)
	}
}

// Ensure a store failure is non-fatal and the record is still returned.
func TestPipeline_Run_StoreFailureNonFatal(t *testing.T) {
	p := NewPipeline()
	p.TextExtractor.ExtractTextFn = func(ctx context.Context, doc *podgen.Document) (string, error) {
		return "text", nil
	}
	p.SummaryService.SummarizeFn = func(ctx context.Context, text string) (string, error) {
		return "SUMMARY", nil
	}
	p.ScriptService.WriteScriptFn = func(ctx context.Context, summary string) (string, error) {
		return "Alex: hello", nil
	}
	p.SpeechService.SynthesizeSpeechFn = func(ctx context.Context, voiceID, text string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("audio")), nil
	}
	p.FileService.CreateFileFn = func(ctx context.Context, f *podgen.File, r io.Reader) error {
		_, err := io.Copy(io.Discard, r)
		return err
	}
	p.PodcastService.CreatePodcastFn = func(ctx context.Context, podcast *podgen.Podcast) error {
		return errors.New("store down")
	}

	var log bytes.Buffer
	p.LogOutput = &log

	podcast, err := p.Run(context.Background(), &podgen.Document{Name: "a.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if podcast == nil || podcast.Status != podgen.PodcastStatusCompleted {
		t.Fatalf("unexpected podcast: %#v", podcast)
	}
	if !strings.Contains(log.String(), "store podcast failed") {
		t.Fatalf("expected store warning, got: %q", log.String())
	}
}

// Pipeline is a test wrapper wiring mock services with a sequential namer.
type Pipeline struct {
	*podgen.Pipeline

	TextExtractor  *mock.TextExtractor
	SummaryService *mock.SummaryService
	ScriptService  *mock.ScriptService
	SpeechService  *mock.SpeechService
	FileService    *mock.FileService
	PodcastService *mock.PodcastService
}

// NewPipeline returns a pipeline with all services mocked and the test
// voice mapping installed.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		Pipeline:       podgen.NewPipeline(),
		TextExtractor:  &mock.TextExtractor{},
		SummaryService: &mock.SummaryService{},
		ScriptService:  &mock.ScriptService{},
		SpeechService:  &mock.SpeechService{},
		FileService:    &mock.FileService{},
		PodcastService: &mock.PodcastService{},
	}
	p.Pipeline.TextExtractor = p.TextExtractor
	p.Pipeline.SummaryService = p.SummaryService
	p.Pipeline.ScriptService = p.ScriptService
	p.Pipeline.SpeechService = p.SpeechService
	p.Pipeline.FileService = p.FileService
	p.Pipeline.PodcastService = p.PodcastService
	p.Pipeline.Voices = testVoices

	var n int
	p.FileService.GenerateNameFn = func(ext string) string {
		n++
		return fmt.Sprintf("podcast_%04d%s", n, ext)
	}
	return p
}
