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


package ai

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// GeminiHost is the OpenAI-compatible endpoint of Google's Gemini API.
const GeminiHost = "https://generativelanguage.googleapis.com/v1beta/openai"

// Config holds configuration for the LLM backend.
type Config struct {
	// Host is the base URL of an OpenAI-compatible chat completions API.
	// Example: "http://localhost:11434/v1" for a local Ollama server,
	// GeminiHost for Gemini.
	Host string

	// Model is the model identifier used for analysis and ranking.
	// Example: "gemini-2.5-flash", "qwen2.5:7b", "gpt-4o-mini"
	Model string

	// APIKey authenticates against hosted APIs. Local servers accept any
	// token, so an empty key is sent as "none".
	APIKey string

	// Temperature controls sampling. Default: 0.0
	Temperature float64

	// MaxAttempts bounds how many times a failed call is attempted.
	// Default: 2
	MaxAttempts int

	// RetryDelay is the base delay for exponential backoff between attempts.
	// Default: 1s
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxAttempts sets the number of attempts for a failed call.
func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithRetryDelay sets the base backoff delay.
func WithRetryDelay(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

// DefaultConfig returns a Config targeting a local OpenAI-compatible server.
func DefaultConfig() *Config {
	return &Config{
		Host:        "http://localhost:11434/v1",
		Model:       "qwen2.5:7b",
		Temperature: 0.0,
		MaxAttempts: 2,
		RetryDelay:  1 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost(GeminiHost),
//	    WithModel("gemini-2.5-flash"),
//	    WithAPIKey(key),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// A host given without any path gets the /v1 suffix most OpenAI-compatible
// servers (Ollama, LocalAI, vLLM) expect. Hosts that already carry a path,
// such as GeminiHost, are left alone apart from a trailing slash.
func (c *Config) Normalize() {
	if c.Host == "" {
		return
	}
	c.Host = strings.TrimSuffix(c.Host, "/")
	u, err := url.Parse(c.Host)
	if err != nil {
		return
	}
	if u.Path == "" {
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return fmt.Errorf("%w: Host is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.Host); err != nil {
		return fmt.Errorf("%w: Host %q is not a valid URL", ErrInvalidConfig, c.Host)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: Model is required", ErrInvalidConfig)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: Temperature must be between 0 and 2", ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: MaxAttempts must be at least 1", ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: RetryDelay cannot be negative", ErrInvalidConfig)
	}
	return nil
}
