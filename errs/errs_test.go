package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyPredicates(t *testing.T) {
	input := Input("bad %s", "argument")
	notFound := NotFound("missing %s", "thing")
	provider := Provider(errors.New("boom"), "call failed")

	assert.True(t, IsInput(input))
	assert.False(t, IsInput(notFound))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(provider))

	assert.True(t, IsProvider(provider))
	assert.False(t, IsProvider(input))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer context: %w", NotFound("document gone"))
	assert.True(t, IsNotFound(wrapped))

	doubly := fmt.Errorf("even more: %w", wrapped)
	assert.True(t, IsNotFound(doubly))
}

func TestProviderKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Provider(cause, "embedding call failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "embedding call failed: connection refused", err.Error())
}

func TestProviderWithoutCause(t *testing.T) {
	err := Provider(nil, "backend down")
	assert.Equal(t, "backend down", err.Error())
	assert.True(t, IsProvider(err))
}
