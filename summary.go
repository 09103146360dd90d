package podgen

import "context"

// Summarization errors.
const (
	ErrModelUnavailable = Error("summarization model unavailable")
	ErrGeneration       = Error("text generation failed")
)

// Summarization length bounds. The summary targets SummaryMinWords to
// SummaryMaxWords words and the model is capped at SummaryMaxTokens.
const (
	SummaryMinWords  = 150
	SummaryMaxWords  = 200
	SummaryMinTokens = 200
	SummaryMaxTokens = 360
)

// SummaryTemperature is the sampling temperature used for summarization.
// Output is sampled and must not be assumed reproducible.
const SummaryTemperature = 0.7

// SummaryService produces a narrative summary of normalized document text.
type SummaryService interface {
	Summarize(ctx context.Context, text string) (string, error)
}

const summaryInstruction = `Summarize the following text into a concise, clear, and natural narrative suitable for a speaker or podcast.

Your goals:
- Capture only the essential points in a flowing story.
- Avoid repeating instructions or meta-comments from the text.
- Keep the narrative easy to understand, like explaining to someone aloud.
- Use smooth transitions between ideas.
- Maintain factual accuracy and include key examples if they clarify the point.
- Target a length of 150-200 words for short chapters or sections.

Do not include bullet points, lists, stage directions, or any formatting.
Write as if you are narrating the content naturally to an audience.

Now, summarize the following text:`

// SummaryPrompt builds the instructional prompt for the summarization model.
func SummaryPrompt(text string) string {
	return summaryInstruction + "\n\nText:\n" + text
}
