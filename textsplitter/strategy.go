package textsplitter

import (
	"fmt"
	"regexp"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// RegexStrategy uses a regex for sentence splitting.
type RegexStrategy struct {
	re *regexp.Regexp
}

func NewRegexStrategy(expr string) *RegexStrategy {
	if expr == "" {
		expr = DefaultChunkingRegex
	}
	return &RegexStrategy{re: regexp.MustCompile(expr)}
}

func (s *RegexStrategy) Split(text string) []string {
	return s.re.FindAllString(text, -1)
}

// EnglishSentenceStrategy uses neurosnap/sentences with its embedded English
// training data for sentence boundary detection.
type EnglishSentenceStrategy struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewEnglishSentenceStrategy() (*EnglishSentenceStrategy, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load english sentence tokenizer: %w", err)
	}
	return &EnglishSentenceStrategy{tokenizer: tokenizer}, nil
}

func (s *EnglishSentenceStrategy) Split(text string) []string {
	sents := s.tokenizer.Tokenize(text)
	result := make([]string, len(sents))
	for i, sent := range sents {
		result[i] = sent.Text
	}
	return result
}

var (
	_ SentenceStrategy = (*RegexStrategy)(nil)
	_ SentenceStrategy = (*EnglishSentenceStrategy)(nil)
)
