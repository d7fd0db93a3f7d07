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

package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/contractsearch/analysis"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/ranking"
	"github.com/poiesic/contractsearch/storage"
)

// WebSearcher turns search queries into hits. *websearch.Client
// implements it.
type WebSearcher interface {
	Search(ctx context.Context, queries []string) []core.SearchHit
}

// Searcher finds documents similar to a contract by chaining analysis,
// web search and ranking. Each stage degrades to its own fallback, so
// the only reported conditions are missing input and cancellation.
type Searcher struct {
	analyzer analysis.Analyzer
	web      WebSearcher
	ranker   ranking.Ranker
	runs     storage.RunRepository
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "searcher")
		return nil
	}
}

// WithRunRepository records every completed search in repo.
func WithRunRepository(repo storage.RunRepository) Option {
	return func(s *Searcher) error {
		s.runs = repo
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	analyzer analysis.Analyzer,
	web WebSearcher,
	ranker ranking.Ranker,
	opts ...Option,
) (*Searcher, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	if web == nil {
		return nil, ErrWebSearcherRequired
	}
	if ranker == nil {
		return nil, ErrRankerRequired
	}

	s := &Searcher{
		analyzer: analyzer,
		web:      web,
		ranker:   ranker,
		logger:   slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Analyze runs the analysis stage alone.
// Returns core.ErrNoInput when contractText is blank.
func (s *Searcher) Analyze(ctx context.Context, contractText string) (core.ContractProfile, error) {
	if strings.TrimSpace(contractText) == "" {
		return core.ContractProfile{}, core.ErrNoInput
	}
	profile := s.analyzer.Analyze(ctx, contractText)
	if err := ctx.Err(); err != nil {
		return core.ContractProfile{}, err
	}
	return profile, nil
}

// FindSimilar returns up to ranking.MaxResults documents similar to the
// contract, best first.
// Returns core.ErrNoInput when contractText is blank.
func (s *Searcher) FindSimilar(ctx context.Context, contractText string) ([]core.RankedResult, error) {
	return s.FindSimilarWithMonitor(ctx, contractText, nil)
}

// FindSimilarWithMonitor is FindSimilar with a monitor receiving callbacks
// at each stage of the search process.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, contractText string, monitor SearchMonitor) ([]core.RankedResult, error) {
	if strings.TrimSpace(contractText) == "" {
		return nil, core.ErrNoInput
	}

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(contractText)

	// 1. Understand the contract
	profile := s.analyzer.Analyze(ctx, contractText)
	monitor.AfterAnalysis(profile)

	// 2. Look for candidates on the web
	hits := s.web.Search(ctx, profile.SearchQueries)
	monitor.AfterWebSearch(hits)

	// 3. Score candidates against the contract
	results := s.ranker.Rank(ctx, contractText, hits)
	monitor.AfterRanking(results)

	if err := ctx.Err(); err != nil {
		s.logger.Warn("search cancelled", "err", err)
		return nil, err
	}

	s.record(ctx, contractText, profile, results)
	monitor.Finish(results)

	return results, nil
}

// record stores the run when a repository is configured. Failures are
// logged and never reach the caller.
func (s *Searcher) record(ctx context.Context, contractText string, profile core.ContractProfile, results []core.RankedResult) {
	if s.runs == nil {
		return
	}
	run, err := s.runs.AddRun(ctx, &core.SearchRun{
		Fingerprint: core.IDFromContent(contractText),
		Profile:     profile,
		Results:     results,
	})
	if err != nil {
		s.logger.Warn("failed to record search run", "err", err)
		return
	}
	s.logger.Debug("recorded search run", "id", run.Id, "results", len(results))
}
