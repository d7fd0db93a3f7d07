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

package ranking

import (
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/contractsearch/ai"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/pacing"
)

const (
	// BatchSize is how many hits are scored per model call.
	BatchSize = 5

	// MaxResults caps the ranked output.
	MaxResults = 15

	// MaxPromptChars is how much of the contract the model sees.
	MaxPromptChars = 500

	// DefaultScore is assigned when the model's verdict is unavailable.
	DefaultScore = 50.0

	// ExplanationBasicMatch accompanies DefaultScore when the model replied
	// but its answer could not be used.
	ExplanationBasicMatch = "Basic relevance match"

	// ExplanationUnavailable accompanies DefaultScore when the model call
	// itself failed.
	ExplanationUnavailable = "Could not analyze similarity"
)

// Ranker scores search hits against the original contract.
// Rank never fails. It returns at most MaxResults results sorted by
// descending score, ties kept in input order. An empty hit list yields an
// empty result without any external call.
type Ranker interface {
	Rank(ctx context.Context, contract string, hits []core.SearchHit) []core.RankedResult
}

// Option configures a Ranker.
type Option func(*options)

type options struct {
	logger *slog.Logger
	pacer  pacing.Pacer
}

// WithLogger sets a custom logger for the ranker.
// If not provided, uses slog.Default() with component="ranker".
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPacer sets the pause taken after every model-scored batch.
// If not provided, uses pacing.Default().Rank. Ignored by the heuristic ranker.
func WithPacer(p pacing.Pacer) Option {
	return func(o *options) {
		o.pacer = p
	}
}

// New selects the ranker implementation. A nil generator yields the
// HeuristicRanker; otherwise an LLMRanker.
func New(generator ai.Generator, opts ...Option) Ranker {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.pacer == nil {
		o.pacer = pacing.Default().Rank
	}
	logger := o.logger.With("component", "ranker")

	if generator == nil {
		logger.Debug("no model configured, using keyword ranking")
		return NewHeuristicRanker()
	}
	return &LLMRanker{
		generator: generator,
		pacer:     o.pacer,
		logger:    logger,
	}
}

// batches splits hits into consecutive groups of at most size.
func batches(hits []core.SearchHit, size int) [][]core.SearchHit {
	var out [][]core.SearchHit
	for start := 0; start < len(hits); start += size {
		out = append(out, hits[start:min(start+size, len(hits))])
	}
	return out
}

// finalize stable-sorts results by descending score and keeps the top
// MaxResults.
func finalize(results []core.RankedResult) []core.RankedResult {
	slices.SortStableFunc(results, func(a, b core.RankedResult) int {
		switch {
		case a.SimilarityScore > b.SimilarityScore:
			return -1
		case a.SimilarityScore < b.SimilarityScore:
			return 1
		}
		return 0
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// withDefault scores every hit with DefaultScore and explanation.
func withDefault(hits []core.SearchHit, explanation string) []core.RankedResult {
	results := make([]core.RankedResult, len(hits))
	for i, hit := range hits {
		results[i] = core.RankedResult{
			SearchHit:       hit,
			SimilarityScore: DefaultScore,
			Explanation:     explanation,
		}
	}
	return results
}
