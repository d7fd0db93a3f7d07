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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/contractsearch/ai"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/pacing"
)

// LLMRanker asks a language model to score hits in batches of BatchSize.
// A batch whose call fails, or whose reply cannot be decoded, is scored
// DefaultScore without affecting other batches.
type LLMRanker struct {
	generator ai.Generator
	pacer     pacing.Pacer
	logger    *slog.Logger
}

// rankedEntry is one element of the model's JSON array.
type rankedEntry struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	SimilarityScore *float64 `json:"similarity_score"`
	Explanation     string   `json:"explanation"`
	Source          string   `json:"source"`
}

// batchOutcome is the result of scoring one batch with the model.
type batchOutcome struct {
	batch    []core.SearchHit
	entries  []rankedEntry
	callErr  error
	parseErr error
}

// fold appends the outcome's results to acc, substituting defaults for a
// failed batch.
func (o batchOutcome) fold(acc []core.RankedResult, logger *slog.Logger) []core.RankedResult {
	switch {
	case o.callErr != nil:
		logger.Warn("ranking call failed, using default scores", "batchSize", len(o.batch), "err", o.callErr)
		return append(acc, withDefault(o.batch, ExplanationUnavailable)...)
	case o.parseErr != nil:
		logger.Warn("unusable ranking reply, using default scores", "batchSize", len(o.batch), "err", o.parseErr)
		return append(acc, withDefault(o.batch, ExplanationBasicMatch)...)
	}
	return append(acc, align(o.batch, o.entries)...)
}

// Rank implements Ranker.
func (r *LLMRanker) Rank(ctx context.Context, contract string, hits []core.SearchHit) []core.RankedResult {
	if len(hits) == 0 {
		return []core.RankedResult{}
	}

	excerpt := core.Truncate(contract, MaxPromptChars)
	results := make([]core.RankedResult, 0, len(hits))
	for i, batch := range batches(hits, BatchSize) {
		if ctx.Err() != nil {
			// Remaining batches still need a result.
			results = append(results, withDefault(batch, ExplanationUnavailable)...)
			continue
		}
		results = r.rankBatch(ctx, excerpt, batch).fold(results, r.logger)
		if err := r.pacer.Pause(ctx); err != nil {
			r.logger.Debug("ranking pause interrupted", "batch", i, "err", err)
		}
	}

	return finalize(results)
}

func (r *LLMRanker) rankBatch(ctx context.Context, excerpt string, batch []core.SearchHit) batchOutcome {
	outcome := batchOutcome{batch: batch}

	batchJSON, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		outcome.callErr = fmt.Errorf("encode batch: %w", err)
		return outcome
	}

	reply, err := r.generator.Generate(ctx, buildRankingPrompt(excerpt, string(batchJSON)))
	if err != nil {
		outcome.callErr = err
		return outcome
	}

	entries, err := ai.DecodeArray[[]rankedEntry](reply)
	if err != nil {
		outcome.parseErr = err
		return outcome
	}
	outcome.entries = entries
	return outcome
}

// align maps model entries onto the batch hits, first by URL and then by
// position. The hit fields always come from the search, never from the
// model. Hits left without an entry get DefaultScore; surplus entries are
// dropped.
func align(batch []core.SearchHit, entries []rankedEntry) []core.RankedResult {
	byURL := make(map[string]int, len(entries))
	for j, e := range entries {
		url := strings.TrimSpace(e.URL)
		if _, seen := byURL[url]; !seen && url != "" {
			byURL[url] = j
		}
	}

	used := make([]bool, len(entries))
	matched := make([]int, len(batch))
	for i, hit := range batch {
		matched[i] = -1
		if j, ok := byURL[hit.URL]; ok && !used[j] {
			matched[i] = j
			used[j] = true
		}
	}
	for i := range batch {
		if matched[i] == -1 && i < len(entries) && !used[i] {
			matched[i] = i
			used[i] = true
		}
	}

	results := make([]core.RankedResult, len(batch))
	for i, hit := range batch {
		if matched[i] == -1 {
			results[i] = withDefault(batch[i:i+1], ExplanationBasicMatch)[0]
			continue
		}
		results[i] = toResult(hit, entries[matched[i]])
	}
	return results
}

func toResult(hit core.SearchHit, e rankedEntry) core.RankedResult {
	score := DefaultScore
	if e.SimilarityScore != nil {
		score = core.ClampScore(*e.SimilarityScore)
	}
	explanation := strings.TrimSpace(e.Explanation)
	if explanation == "" {
		explanation = ExplanationBasicMatch
	}
	return core.RankedResult{
		SearchHit:       hit,
		SimilarityScore: score,
		Explanation:     explanation,
	}
}
