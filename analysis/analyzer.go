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

package analysis

import (
	"context"
	"log/slog"

	"github.com/poiesic/contractsearch/ai"
	"github.com/poiesic/contractsearch/core"
)

// Analyzer turns raw contract text into a ContractProfile.
// Analyze never fails: every implementation degrades to the keyword
// heuristic rather than returning an error. The returned profile always
// carries at least one search query.
type Analyzer interface {
	Analyze(ctx context.Context, contractText string) core.ContractProfile
}

// Option configures an Analyzer.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger for the analyzer.
// If not provided, uses slog.Default() with component="analyzer".
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New selects the analyzer implementation. A nil generator means no model
// is configured and yields the HeuristicAnalyzer; otherwise the returned
// LLMAnalyzer falls back to the heuristic per call.
func New(generator ai.Generator, opts ...Option) Analyzer {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	logger := o.logger.With("component", "analyzer")

	heuristic := NewHeuristicAnalyzer()
	if generator == nil {
		logger.Debug("no model configured, using keyword analysis")
		return heuristic
	}
	return &LLMAnalyzer{
		generator: generator,
		fallback:  heuristic,
		logger:    logger,
	}
}
