package textsplitter

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/ragspace/errs"
)

func newTestSplitter(t *testing.T, chunkSize, chunkOverlap int) *Splitter {
	t.Helper()
	s, err := NewSplitter(chunkSize, chunkOverlap)
	require.NoError(t, err)
	return s
}

// wordText builds a text of n distinct 4-char words separated by spaces.
func wordText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%03d", i)
	}
	return strings.Join(words, " ")
}

func TestNewSplitter_Validation(t *testing.T) {
	_, err := NewSplitter(100, 100)
	assert.True(t, errs.IsInput(err))

	_, err = NewSplitter(100, -1)
	assert.True(t, errs.IsInput(err))

	s, err := NewSplitter(0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize)
}

func TestSplitText_RejectsEmptyInput(t *testing.T) {
	s := newTestSplitter(t, 100, 20)

	_, err := s.SplitText("")
	assert.True(t, errs.IsInput(err))

	_, err = s.SplitText("   \n\t  ")
	assert.True(t, errs.IsInput(err))
}

func TestSplitText_ShortInputSingleChunk(t *testing.T) {
	s := newTestSplitter(t, 100, 20)

	chunks, err := s.SplitText("A short document.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short document.", chunks[0])
}

func TestSplitText_ChunkSizeBound(t *testing.T) {
	s := newTestSplitter(t, 100, 20)

	chunks, err := s.SplitText(wordText(200))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 100, "chunk %d over budget", i)
	}
}

func TestSplitText_ChunkCountProperty(t *testing.T) {
	// For text of length L with chunk size S and overlap O, the number of
	// chunks is ceil((L-O)/(S-O)) within +-1 for boundary adjustment.
	size, overlap := 100, 20
	s := newTestSplitter(t, size, overlap)

	text := wordText(200) // 999 runes
	chunks, err := s.SplitText(text)
	require.NoError(t, err)

	l := utf8.RuneCountInString(text)
	expected := (l - overlap + (size - overlap) - 1) / (size - overlap)
	assert.InDelta(t, expected, len(chunks), 1)
}

func TestSplitText_ConsecutiveChunksOverlap(t *testing.T) {
	s := newTestSplitter(t, 100, 20)

	chunks, err := s.SplitText(wordText(200))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 0; i < len(chunks)-1; i++ {
		shared := sharedOverlap(chunks[i], chunks[i+1])
		assert.GreaterOrEqual(t, shared, 15, "chunks %d and %d share too little", i, i+1)
	}
}

// sharedOverlap returns the length of the longest suffix of a that is a
// prefix of b.
func sharedOverlap(a, b string) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(a, b[:n]) {
			return n
		}
	}
	return 0
}

func TestSplitText_NoOverlapConfigured(t *testing.T) {
	s := newTestSplitter(t, 100, 0)

	chunks, err := s.SplitText(wordText(200))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	total := 0
	for _, chunk := range chunks {
		total += utf8.RuneCountInString(chunk)
	}
	// Without overlap no text is duplicated across chunks.
	assert.LessOrEqual(t, total, utf8.RuneCountInString(wordText(200)))
}

func TestSplitText_PrefersParagraphBoundaries(t *testing.T) {
	s := newTestSplitter(t, 50, 10)

	para1 := strings.Repeat("aaaa ", 8) // 40 runes with trailing space
	para2 := strings.Repeat("bbbb ", 8)
	chunks, err := s.SplitText(strings.TrimSpace(para1) + "\n\n" + strings.TrimSpace(para2))
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.NotContains(t, chunks[0], "bbbb")
	assert.NotContains(t, chunks[1], "aaaa")
}

func TestSplitText_SentenceBoundaries(t *testing.T) {
	s := newTestSplitter(t, 60, 0)

	text := "The first sentence is here. The second sentence follows it. The third one ends the text."
	chunks, err := s.SplitText(text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// Chunks should break between sentences, not inside a word.
	for _, chunk := range chunks {
		assert.NotRegexp(t, `^[a-z]`, chunk, "chunk starts mid-sentence: %q", chunk)
	}
}

func TestSplitBySep_KeepsSeparators(t *testing.T) {
	split := splitBySep("\n\n")

	pieces := split("one\n\ntwo\n\nthree")
	assert.Equal(t, []string{"one\n\n", "two\n\n", "three"}, pieces)
	// Joining the pieces loses no text.
	assert.Equal(t, "one\n\ntwo\n\nthree", strings.Join(pieces, ""))

	// A trailing separator does not produce an empty piece.
	assert.Equal(t, []string{"one\n\n"}, split("one\n\n"))

	assert.Equal(t, []string{"whole text"}, splitBySep("")("whole text"))
}

func TestSplitByRegex_ClauseBoundaries(t *testing.T) {
	split := splitByRegex(DefaultChunkingRegex)
	assert.Equal(t, []string{"alpha,", " beta;", " gamma."}, split("alpha, beta; gamma."))
}

func TestSplitText_ReconstructsSource(t *testing.T) {
	s := newTestSplitter(t, 100, 0)

	text := wordText(200)
	chunks, err := s.SplitText(text)
	require.NoError(t, err)

	joined := strings.Join(chunks, " ")
	assert.Equal(t, text, joined)
}
