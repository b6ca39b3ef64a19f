package textsplitter

// TextSplitter is the interface for splitting text into chunks.
type TextSplitter interface {
	SplitText(text string) ([]string, error)
}

// LengthFunc measures the length of a piece of text.
// The default counts runes; a tiktoken-backed function counts tokens.
type LengthFunc func(text string) int

// SentenceStrategy is the interface for sentence-level splitting.
type SentenceStrategy interface {
	Split(text string) []string
}
