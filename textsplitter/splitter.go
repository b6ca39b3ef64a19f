package textsplitter

import (
	"regexp"
	"strings"

	"github.com/aqua777/ragspace/errs"
)

const (
	DefaultChunkSize     = 1024
	DefaultChunkOverlap  = 200
	DefaultParagraphSep  = "\n\n"
	DefaultSeparator     = " "
	DefaultChunkingRegex = `[^,.;。？！]+[,.;。？！]?|[,.;。？！]`
)

// textSplit holds intermediate split information.
type textSplit struct {
	text   string
	length int
}

// Splitter splits text into overlapping chunks bounded by a length budget,
// preferring natural breakpoints: paragraph, then sentence, then word, and
// a hard character cut as the last resort.
type Splitter struct {
	ChunkSize          int
	ChunkOverlap       int
	Separator          string
	ParagraphSeparator string
	Length             LengthFunc
	Strategy           SentenceStrategy

	splitFns    []func(string) []string
	subSplitFns []func(string) []string
}

// SplitterOption is a functional option for Splitter.
type SplitterOption func(*Splitter)

// WithLength sets a custom length function (e.g. TikTokenLength).
func WithLength(fn LengthFunc) SplitterOption {
	return func(s *Splitter) {
		s.Length = fn
	}
}

// WithStrategy sets the sentence splitting strategy.
func WithStrategy(strategy SentenceStrategy) SplitterOption {
	return func(s *Splitter) {
		s.Strategy = strategy
	}
}

// WithParagraphSeparator sets the paragraph separator.
func WithParagraphSeparator(sep string) SplitterOption {
	return func(s *Splitter) {
		s.ParagraphSeparator = sep
	}
}

// NewSplitter creates a Splitter. Pass 0 to use the default chunk size.
// ChunkOverlap must be non-negative and smaller than ChunkSize.
func NewSplitter(chunkSize, chunkOverlap int, opts ...SplitterOption) (*Splitter, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		return nil, errs.Input("chunk overlap must be non-negative, got %d", chunkOverlap)
	}
	if chunkOverlap >= chunkSize {
		return nil, errs.Input("chunk overlap (%d) must be less than chunk size (%d)", chunkOverlap, chunkSize)
	}

	s := &Splitter{
		ChunkSize:          chunkSize,
		ChunkOverlap:       chunkOverlap,
		Separator:          DefaultSeparator,
		ParagraphSeparator: DefaultParagraphSep,
		Length:             RuneLength,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.Strategy == nil {
		strategy, err := NewEnglishSentenceStrategy()
		if err != nil {
			return nil, err
		}
		s.Strategy = strategy
	}

	s.initSplitFns()
	return s, nil
}

func (s *Splitter) initSplitFns() {
	// Primary split functions: paragraph separator, then sentence boundaries.
	s.splitFns = []func(string) []string{
		splitBySep(s.ParagraphSeparator),
		func(text string) []string { return s.Strategy.Split(text) },
	}

	// Fallbacks when a sentence is still over budget: clause regex, word, rune.
	s.subSplitFns = []func(string) []string{
		splitByRegex(DefaultChunkingRegex),
		splitBySep(s.Separator),
		splitByRune,
	}
}

// splitBySep returns a split function that cuts on sep, keeping each
// separator attached to the piece before it so no text is lost.
func splitBySep(sep string) func(string) []string {
	return func(text string) []string {
		if sep == "" {
			return []string{text}
		}
		pieces := strings.SplitAfter(text, sep)
		out := pieces[:0]
		for _, piece := range pieces {
			if piece != "" {
				out = append(out, piece)
			}
		}
		return out
	}
}

// splitByRegex returns a split function yielding every match of expr.
func splitByRegex(expr string) func(string) []string {
	re := regexp.MustCompile(expr)
	return func(text string) []string {
		return re.FindAllString(text, -1)
	}
}

func splitByRune(text string) []string {
	return strings.Split(text, "")
}

// SplitText splits the text into chunks. Empty or all-whitespace text is
// rejected: a document with no extractable text is not chunked.
func (s *Splitter) SplitText(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.Input("cannot split empty or all-whitespace text")
	}

	splits := s.split(text)
	chunks := s.merge(splits)
	return s.postprocessChunks(chunks), nil
}

func (s *Splitter) split(text string) []textSplit {
	length := s.Length(text)
	if length <= s.ChunkSize {
		return []textSplit{{text: text, length: length}}
	}

	pieces := s.getSplitsByFns(text)
	var splits []textSplit
	for _, piece := range pieces {
		pieceLen := s.Length(piece)
		if pieceLen <= s.ChunkSize {
			splits = append(splits, textSplit{text: piece, length: pieceLen})
		} else {
			splits = append(splits, s.split(piece)...)
		}
	}
	return splits
}

func (s *Splitter) getSplitsByFns(text string) []string {
	for _, splitFn := range s.splitFns {
		splits := splitFn(text)
		if len(splits) > 1 {
			return splits
		}
	}

	var splits []string
	for _, splitFn := range s.subSplitFns {
		splits = splitFn(text)
		if len(splits) > 1 {
			break
		}
	}
	return splits
}

func (s *Splitter) merge(splits []textSplit) []string {
	var chunks []string
	var cur []textSplit
	curLen := 0
	overlapLen := 0 // leading portion of cur carried over from the previous chunk

	closeChunk := func() {
		var sb strings.Builder
		for _, item := range cur {
			sb.WriteString(item.text)
		}
		chunks = append(chunks, sb.String())

		// Carry trailing splits into the next chunk as overlap.
		var carry []textSplit
		carryLen := 0
		for i := len(cur) - 1; i >= 0; i-- {
			if carryLen+cur[i].length > s.ChunkOverlap {
				break
			}
			carryLen += cur[i].length
			carry = append([]textSplit{cur[i]}, carry...)
		}
		cur = carry
		curLen = carryLen
		overlapLen = carryLen
	}

	for _, sp := range splits {
		if curLen+sp.length > s.ChunkSize && curLen > overlapLen {
			closeChunk()
		}
		// Shrink the carried overlap if the next split would not fit beside it.
		for curLen+sp.length > s.ChunkSize && overlapLen > 0 {
			overlapLen -= cur[0].length
			curLen -= cur[0].length
			cur = cur[1:]
		}
		cur = append(cur, sp)
		curLen += sp.length
	}

	// Emit the tail unless it is nothing but carried overlap.
	if curLen > overlapLen {
		var sb strings.Builder
		for _, item := range cur {
			sb.WriteString(item.text)
		}
		chunks = append(chunks, sb.String())
	}

	return chunks
}

func (s *Splitter) postprocessChunks(chunks []string) []string {
	var out []string
	for _, chunk := range chunks {
		stripped := strings.TrimSpace(chunk)
		if stripped == "" {
			continue
		}
		out = append(out, stripped)
	}
	return out
}

var _ TextSplitter = (*Splitter)(nil)
