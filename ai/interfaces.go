package ai

import "context"

// Generator turns a text prompt into free-form model output.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate sends prompt to the model and returns its raw text reply.
	// The reply may wrap the requested JSON in prose or markdown fences;
	// callers decode it with DecodeObject or DecodeArray.
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIProvider owns a configured Generator and its resources.
type AIProvider interface {
	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
