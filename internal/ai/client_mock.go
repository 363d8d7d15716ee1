package ai

import (
	"context"
	"sync"
)

// MockGenerator is a mock implementation of Generator for testing purposes.
// It allows setting a predefined response and error without making actual
// model calls.
type MockGenerator struct {
	mu           sync.Mutex
	name         string
	response     string
	err          error
	maxTokens    int
	callCount    int
	lastMessages []Message
}

// NewMockGenerator creates a new MockGenerator instance
func NewMockGenerator(name string) *MockGenerator {
	return &MockGenerator{name: name}
}

// Name returns the mock backend name
func (m *MockGenerator) Name() string {
	return m.name
}

// SetResponse sets the response to return from Generate
func (m *MockGenerator) SetResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	m.err = nil
}

// SetError sets the error to return from Generate
func (m *MockGenerator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.response = ""
}

// SetMaxInputTokens sets the declared token budget
func (m *MockGenerator) SetMaxInputTokens(max int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxTokens = max
}

// MaxInputTokens returns the configured token budget
func (m *MockGenerator) MaxInputTokens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxTokens
}

// CountTokens estimates tokens for the message list
func (m *MockGenerator) CountTokens(messages []Message) int {
	return EstimateTokens(messages)
}

// Generate implements Generator, returning the configured response or error
func (m *MockGenerator) Generate(_ context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.lastMessages = append([]Message(nil), messages...)

	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// CallCount returns the number of times Generate has been called
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastMessages returns the messages passed to the most recent Generate call
func (m *MockGenerator) LastMessages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessages
}
