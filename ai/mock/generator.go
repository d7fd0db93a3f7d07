package mock

import (
	"context"
	"sync"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and records
// every prompt it receives.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Generate returns Response and Err.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Response is returned when GenerateFunc is nil.
	Response string

	// Err is returned when GenerateFunc is nil.
	Err error

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator creates a mock generator that replies with response.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

// NewFailingGenerator creates a mock generator whose every call fails with err.
func NewFailingGenerator(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// WithGenerateFunc sets a custom function for Generate.
func (m *MockGenerator) WithGenerateFunc(fn func(ctx context.Context, prompt string) (string, error)) *MockGenerator {
	m.GenerateFunc = fn
	return m
}

// Generate records the prompt and returns the scripted reply.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears the recorded prompts and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.GenerateFunc = nil
}
