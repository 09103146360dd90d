package elevenlabs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	elevenlabs "github.com/haguro/elevenlabs-go"
	"github.com/middlemost/podgen"
)

// DefaultModel is the synthesis model requested for every utterance.
const DefaultModel = "eleven_multilingual_v2"

// Ensure service implements interface.
var _ podgen.SpeechService = &SpeechService{}

// SpeechService performs text-to-speech over the ElevenLabs API.
type SpeechService struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	LogOutput io.Writer
}

// NewSpeechService returns a new instance of SpeechService.
func NewSpeechService() *SpeechService {
	return &SpeechService{
		Model:     DefaultModel,
		Timeout:   2 * time.Minute,
		LogOutput: io.Discard,
	}
}

// SynthesizeSpeech converts text to audio with the given voice.
// The provider streams audio chunks; they are buffered and returned as a
// single reader so the caller sees one contiguous byte stream.
func (s *SpeechService) SynthesizeSpeech(ctx context.Context, voiceID, text string) (io.ReadCloser, error) {
	client := elevenlabs.NewClient(ctx, s.APIKey, s.Timeout)

	var buf bytes.Buffer
	err := client.TextToSpeechStream(&buf, voiceID, elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: s.Model,
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.LogOutput, "elevenlabs: synthesized: voice=%s chars=%d bytes=%d\n", voiceID, len(text), buf.Len())

	return io.NopCloser(&buf), nil
}
