package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/middlemost/podgen"
	ollama "github.com/ollama/ollama/api"
)

// DefaultModel is the local model used for summarization.
const DefaultModel = "llama3.2"

// Ensure service implements interface.
var _ podgen.SummaryService = &SummaryService{}

// SummaryService produces narrative summaries with a locally served model.
type SummaryService struct {
	client *ollama.Client

	Model string
}

// NewSummaryService returns a summary service talking to an Ollama host.
func NewSummaryService(host string) (*SummaryService, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	client := ollama.NewClient(u, &http.Client{Timeout: 5 * time.Minute})
	return &SummaryService{client: client, Model: DefaultModel}, nil
}

// Summarize requests a bounded-length narrative summary of text.
// Generation is sampled; repeated calls may return different output.
func (s *SummaryService) Summarize(ctx context.Context, text string) (string, error) {
	if s == nil || s.client == nil {
		return "", podgen.ErrModelUnavailable
	}

	req := &ollama.GenerateRequest{
		Model:  s.Model,
		Prompt: podgen.SummaryPrompt(text),
		Options: map[string]any{
			"temperature": podgen.SummaryTemperature,
			"num_predict": podgen.SummaryMaxTokens,
		},
	}

	var sb strings.Builder
	err := s.client.Generate(ctx, req, func(resp ollama.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", podgen.ErrGeneration, err)
	}
	return sb.String(), nil
}
