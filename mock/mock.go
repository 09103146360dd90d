package mock

import (
	"context"
	"io"

	"github.com/middlemost/podgen"
)

var _ podgen.TextExtractor = &TextExtractor{}

type TextExtractor struct {
	ExtractTextFn func(ctx context.Context, doc *podgen.Document) (string, error)
}

func (e *TextExtractor) ExtractText(ctx context.Context, doc *podgen.Document) (string, error) {
	return e.ExtractTextFn(ctx, doc)
}

var _ podgen.SummaryService = &SummaryService{}

type SummaryService struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

func (s *SummaryService) Summarize(ctx context.Context, text string) (string, error) {
	return s.SummarizeFn(ctx, text)
}

var _ podgen.ScriptService = &ScriptService{}

type ScriptService struct {
	WriteScriptFn func(ctx context.Context, summary string) (string, error)
}

func (s *ScriptService) WriteScript(ctx context.Context, summary string) (string, error) {
	return s.WriteScriptFn(ctx, summary)
}

var _ podgen.SpeechService = &SpeechService{}

type SpeechService struct {
	SynthesizeSpeechFn func(ctx context.Context, voiceID, text string) (io.ReadCloser, error)
}

func (s *SpeechService) SynthesizeSpeech(ctx context.Context, voiceID, text string) (io.ReadCloser, error) {
	return s.SynthesizeSpeechFn(ctx, voiceID, text)
}
