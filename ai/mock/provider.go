// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mock

import "github.com/poiesic/contractsearch/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	generator *MockGenerator
	closed    bool
}

// NewMockProvider creates a new mock provider whose generator replies with response.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockGenerator() to access the concrete type for test assertions.
func NewMockProvider(response string) ai.AIProvider {
	return &MockProvider{generator: NewMockGenerator(response)}
}

// NewMockProviderWithGenerator creates a mock provider around a custom generator.
func NewMockProviderWithGenerator(generator *MockGenerator) ai.AIProvider {
	return &MockProvider{generator: generator}
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
