package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/aqua777/ragspace/errs"
)

// TextReader reads plain-text and markdown files verbatim.
type TextReader struct{}

// NewTextReader creates a TextReader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

func (r *TextReader) ExtractText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errs.Input("no text content found in %s", path)
	}
	return text, nil
}

var _ Reader = (*TextReader)(nil)
