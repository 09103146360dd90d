package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/middlemost/podgen"
	"google.golang.org/api/option"
)

// DefaultModel is the generative model used for script writing.
const DefaultModel = "gemini-2.0-flash"

// Ensure service implements interface.
var _ podgen.ScriptService = &ScriptService{}

// ScriptService generates podcast dialogue scripts with Gemini.
type ScriptService struct {
	client *genai.Client

	Model string
}

// NewScriptService returns a script service using the given API key.
func NewScriptService(ctx context.Context, apiKey string) (*ScriptService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &ScriptService{client: client, Model: DefaultModel}, nil
}

// Close releases the underlying client.
func (s *ScriptService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// WriteScript generates a two-host dialogue script for the summary.
// The raw model output is returned unvalidated; parsing is the caller's job.
func (s *ScriptService) WriteScript(ctx context.Context, summary string) (string, error) {
	model := s.client.GenerativeModel(s.Model)

	resp, err := model.GenerateContent(ctx, genai.Text(podgen.ScriptPrompt(summary)))
	if err != nil {
		return "", fmt.Errorf("%w: %s", podgen.ErrGeneration, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty response", podgen.ErrGeneration)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
