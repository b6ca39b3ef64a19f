package llm

import "context"

// MockLLM is a mock implementation of the LLM interface.
// It can be configured to return specific responses or errors.
type MockLLM struct {
	// Response is the text response to return.
	Response string
	// Err is the error to return (if any).
	Err error
	// LastPrompt records the last prompt passed to Complete.
	LastPrompt string
	// LastMessages records the last messages passed to Chat.
	LastMessages []ChatMessage
}

// NewMockLLM creates a new MockLLM with a simple response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a new MockLLM that returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Err: err}
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	return m.Response, m.Err
}

func (m *MockLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	m.LastMessages = messages
	return m.Response, m.Err
}

var _ LLM = (*MockLLM)(nil)
