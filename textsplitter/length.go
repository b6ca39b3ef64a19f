package textsplitter

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// RuneLength counts runes. It is the default length function, matching the
// character-based chunk budget.
func RuneLength(text string) int {
	return utf8.RuneCountInString(text)
}

// TikTokenLength returns a LengthFunc that counts tokens using the encoding
// for the given OpenAI model. Use it when the chunk budget should be measured
// in model tokens rather than characters.
func TikTokenLength(model string) (LengthFunc, error) {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
	}
	return func(text string) int {
		return len(tkm.Encode(text, nil, nil))
	}, nil
}
