package podgen

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Script errors.
const (
	ErrEmptyScript = Error("script contains no usable dialogue")
)

// The two podcast hosts. Speaker names in generated scripts are matched
// case-insensitively against the keys of the speaker-to-voice mapping.
const (
	SpeakerAlex   = "Alex"
	SpeakerJordan = "Jordan"
)

// ScriptTemperature is the sampling temperature used for script generation.
// Higher than the summary temperature so the dialogue stays conversational;
// output is sampled and must not be assumed reproducible.
const ScriptTemperature = 0.9

// ScriptService generates a two-host dialogue script from a summary.
// The output follows a strict "Name: text" line convention but is not
// validated here; parsing and filtering happen in ParseScript.
type ScriptService interface {
	WriteScript(ctx context.Context, summary string) (string, error)
}

// ScriptPrompt builds the structured prompt for the script generation model.
func ScriptPrompt(summary string) string {
	return fmt.Sprintf(`You are a professional podcast scriptwriter for a popular tech show.

Write a 3-4 minute (approximately 400-500 words) dynamic, natural conversation between two hosts, %[1]s and %[2]s, discussing the following summary:

Summary:
%[3]s

Guidelines:
- Make the conversation smooth, flowing, and easy to read aloud for TTS.
- Each speaker's line must start with their name exactly as:
    %[1]s: ...
    %[2]s: ...
- Alternate naturally between %[1]s and %[2]s.
- Avoid any stage directions, emotion tags, or bracketed instructions.
- Use natural pauses, punctuation, and sentence rhythm to guide TTS intonation.
- Keep the tone friendly, informative, and engaging, like a real podcast discussion between two tech enthusiasts.
- Cover the full narrative: origins, evolution, breakthroughs, ethical considerations, future vision.
- Include a hook at the start and a thought-provoking takeaway at the end.
- Do not use bullet points or any lists.
- Make sure each line is short enough to be clearly read by TTS, ideally 1-2 sentences per line, so that it can be synthesized smoothly.

Format exactly like this:
%[1]s: ...
%[2]s: ...
%[1]s: ...
...

This script will be directly fed to a TTS engine, so clarity, line separation, and readability are critical.`,
		SpeakerAlex, SpeakerJordan, summary)
}

// Utterance is one parsed line of dialogue destined for speech synthesis.
type Utterance struct {
	Voice string `json:"voice"`
	Text  string `json:"text"`
}

var (
	dialogueRegex = regexp.MustCompile(`(?m)^\s*([A-Za-z]+):\s*(.*)$`)
	cueRegex      = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
)

// ParseScript converts raw script text into an ordered sequence of
// utterances. Speaker names are uppercased and looked up in voices;
// bracketed and parenthesized stage cues are stripped from the text.
// Lines with unrecognized speakers, or empty text after cue stripping,
// are silently dropped. The dropped count is returned for diagnostics.
func ParseScript(script string, voices map[string]string) (a []Utterance, dropped int) {
	for _, m := range dialogueRegex.FindAllStringSubmatch(script, -1) {
		speaker := strings.ToUpper(m[1])
		text := strings.TrimSpace(cueRegex.ReplaceAllString(m[2], ""))

		voice, ok := voices[speaker]
		if !ok || text == "" {
			dropped++
			continue
		}
		a = append(a, Utterance{Voice: voice, Text: text})
	}
	return a, dropped
}
