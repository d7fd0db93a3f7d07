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

package openai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/contractsearch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using an OpenAI-compatible chat API.
type Generator struct {
	client      llms.Model
	temperature float64
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible servers ignore the token but langchaingo requires one.
	token := config.APIKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}
	return newGeneratorWithModel(client, config), nil
}

func newGeneratorWithModel(client llms.Model, config *ai.Config) *Generator {
	return &Generator{
		client:      client,
		temperature: config.Temperature,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
		logger:      slog.Default().With("component", "openai-generator"),
	}
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate sends prompt as the human turn of a chat completion and returns
// the first choice. Transport failures are retried with exponential backoff;
// an empty choice list is not.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	var reply string
	err := ai.RetryWithBackoff(ctx, func() error {
		response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(g.temperature))
		if err != nil {
			g.logger.Warn("failed to generate content", "err", err)
			return err
		}
		if len(response.Choices) < 1 {
			return ai.Permanent(ai.ErrEmptyResponse)
		}
		reply = strings.TrimSpace(response.Choices[0].Content)
		if reply == "" {
			return ai.Permanent(ai.ErrEmptyResponse)
		}
		return nil
	}, g.maxAttempts, g.retryDelay)
	if err != nil {
		return "", err
	}

	g.logger.Debug("generated content", "promptLength", len(prompt), "replyLength", len(reply))
	return reply, nil
}
