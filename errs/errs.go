// Package errs defines the error taxonomy shared across the retrieval core.
//
// Three kinds cover every failure the core surfaces: InputError for malformed
// or missing caller input, NotFoundError for absent spaces, documents or
// corpora, and ProviderError for embedding/LLM collaborator failures. None of
// them are retried inside the core; retry policy belongs to the collaborator.
package errs

import (
	"errors"
	"fmt"
)

// InputError reports malformed or missing required input.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// NotFoundError reports an absent space, document, or corpus.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// ProviderError reports a failed embedding or language-model call.
// It keeps the underlying cause for unwrapping.
type ProviderError struct {
	msg   string
	cause error
}

func (e *ProviderError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *ProviderError) Unwrap() error { return e.cause }

// Input creates a new InputError.
func Input(format string, args ...interface{}) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFoundError.
func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// Provider wraps a collaborator failure as a ProviderError.
func Provider(cause error, format string, args ...interface{}) error {
	return &ProviderError{msg: fmt.Sprintf(format, args...), cause: cause}
}

// IsInput reports whether err is (or wraps) an InputError.
func IsInput(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsProvider reports whether err is (or wraps) a ProviderError.
func IsProvider(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}
