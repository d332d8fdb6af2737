// Package summarizer implements extractive summarization with the Edmundson
// heuristics: sentences are rated by bonus and stigma word occurrences (cue
// method) or by frequent bonus words (key method) and the best rated
// sentences form the summary.
package summarizer

const (
	// DefaultSentencesCount is the default number of sentences in a summary.
	DefaultSentencesCount = 3
)

// Summarizer defines the interface for summarizing text content.
type Summarizer interface {
	// Summarize takes a text input and returns a condensed summary.
	Summarize(text string) (string, error)

	// Initialize sets up the summarizer with any required configuration.
	Initialize() error
}
