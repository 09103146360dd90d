package podgen

import (
	"context"
	"io"
)

// Speech errors.
const (
	ErrSynthesis = Error("speech synthesis failed")
)

// SpeechService converts one utterance of text into audio using the given
// voice. The returned reader streams opaque audio bytes and must be closed
// by the caller.
type SpeechService interface {
	SynthesizeSpeech(ctx context.Context, voiceID, text string) (io.ReadCloser, error)
}
