package podgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// AudioExt is the extension given to generated audio artifacts.
// The synthesis provider's output bytes are stored as-is, no re-encoding.
const AudioExt = ".mp3"

// DefaultVoices maps the uppercased host names to their synthesis voices.
var DefaultVoices = map[string]string{
	"ALEX":   "90ipbRoKi4CpHXvKVtl0",
	"JORDAN": "s2wvuS7SwITYg8dqsJdn",
}

// Pipeline converts an uploaded document into a narrated two-host podcast.
// Stages run strictly in order; the first failing stage aborts the run.
type Pipeline struct {
	TextExtractor  TextExtractor
	SummaryService SummaryService
	ScriptService  ScriptService
	SpeechService  SpeechService
	FileService    FileService
	PodcastService PodcastService

	// Speaker name to voice ID mapping used when parsing scripts.
	Voices map[string]string

	LogOutput io.Writer
}

// NewPipeline returns a pipeline with the default voice mapping.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Voices:    DefaultVoices,
		LogOutput: io.Discard,
	}
}

// Run executes the full pipeline for one document and returns the resulting
// record. The record is persisted on a best-effort basis: a store failure is
// logged but the computed record is still returned.
func (p *Pipeline) Run(ctx context.Context, doc *Document) (*Podcast, error) {
	// Extract raw text from the document buffer.
	raw, err := p.TextExtractor.ExtractText(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// Collapse into a single flowing paragraph for the summarizer.
	cleaned := Normalize(raw)

	// Summarize into a short narrative.
	summary, err := p.SummaryService.Summarize(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	// Generate the two-host dialogue script.
	script, err := p.ScriptService.WriteScript(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("write script: %w", err)
	}

	// Parse into speaker-tagged utterances. Unusable lines are dropped
	// silently but counted; a script with no usable dialogue is a failure.
	utterances, dropped := ParseScript(script, p.Voices)
	if dropped > 0 {
		fmt.Fprintf(p.LogOutput, "pipeline: dropped script lines: file=%s n=%d\n", doc.Name, dropped)
	}
	if len(utterances) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}

	// Synthesize and mix into a single artifact.
	name, err := p.synthesize(ctx, utterances)
	if err != nil {
		return nil, err
	}

	podcast := &Podcast{
		ID:          GenerateToken(),
		FileName:    doc.Name,
		ContentType: doc.ContentType,
		Summary:     summary,
		Script:      script,
		AudioPath:   name,
		Status:      PodcastStatusCompleted,
	}

	// Persistence is best-effort and does not invalidate the result.
	if err := p.PodcastService.CreatePodcast(ctx, podcast); err != nil {
		fmt.Fprintf(p.LogOutput, "pipeline: store podcast failed: id=%s err=%s\n", podcast.ID, err)
	}

	return podcast, nil
}

// synthesize converts utterances to speech in script order and writes the
// concatenated audio as one artifact. Utterances are synthesized one at a
// time so artifact byte order always equals script order. Nothing is
// persisted unless every utterance succeeds.
func (p *Pipeline) synthesize(ctx context.Context, utterances []Utterance) (string, error) {
	var buf bytes.Buffer
	for i, u := range utterances {
		rc, err := p.SpeechService.SynthesizeSpeech(ctx, u.Voice, u.Text)
		if err != nil {
			return "", fmt.Errorf("utterance %d: %w: %s", i, ErrSynthesis, err)
		}
		_, err = io.Copy(&buf, rc)
		if e := rc.Close(); err == nil {
			err = e
		}
		if err != nil {
			return "", fmt.Errorf("utterance %d: %w: %s", i, ErrSynthesis, err)
		}
	}

	f := &File{Name: p.FileService.GenerateName(AudioExt)}
	if err := p.FileService.CreateFile(ctx, f, &buf); err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	fmt.Fprintf(p.LogOutput, "pipeline: artifact written: name=%s size=%d\n", f.Name, f.Size)

	return f.Name, nil
}
