//go:build integration

package elevenlabs_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"

	"github.com/middlemost/podgen"
	"github.com/middlemost/podgen/elevenlabs"
)

var (
	apiKey  = flag.String("api-key", "", "ElevenLabs API Key")
	voiceID = flag.String("voice-id", podgen.DefaultVoices["ALEX"], "Voice ID")
)

// Ensure service can synthesize speech over the live API.
func TestSpeechService_SynthesizeSpeech(t *testing.T) {
	if *apiKey == "" {
		t.Fatal("api key required")
	}

	var log bytes.Buffer
	s := elevenlabs.NewSpeechService()
	s.APIKey = *apiKey
	s.LogOutput = &log

	rc, err := s.SynthesizeSpeech(context.Background(), *voiceID, "Hello from the test suite.")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	buf, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) == 0 {
		t.Fatal("expected audio bytes")
	}

	// Show log.
	t.Log(log.String())
}
