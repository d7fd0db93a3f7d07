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
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/contractsearch/ai"
	"github.com/poiesic/contractsearch/core"
)

const (
	// MaxPromptChars is how much of the contract the model sees.
	MaxPromptChars = 2000

	// MaxSearchQueries caps the queries kept from a model profile.
	MaxSearchQueries = 8
)

// LLMAnalyzer asks a language model for the contract profile and falls
// back to the keyword heuristic whenever the model's answer is unusable.
// Results are never merged: a call yields either the model's profile or
// the heuristic one.
type LLMAnalyzer struct {
	generator ai.Generator
	fallback  *HeuristicAnalyzer
	logger    *slog.Logger
}

// Analyze implements Analyzer.
func (a *LLMAnalyzer) Analyze(ctx context.Context, contractText string) core.ContractProfile {
	profile, err := a.analyze(ctx, contractText)
	if err != nil {
		a.logger.Warn("model analysis failed, using keyword analysis", "err", err)
		return a.fallback.Analyze(ctx, contractText)
	}

	a.logger.Debug("analyzed contract",
		"contractType", profile.ContractType,
		"queries", len(profile.SearchQueries))
	return profile
}

func (a *LLMAnalyzer) analyze(ctx context.Context, contractText string) (core.ContractProfile, error) {
	prompt := buildAnalysisPrompt(core.Truncate(contractText, MaxPromptChars))

	reply, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return core.ContractProfile{}, fmt.Errorf("generate: %w", err)
	}

	profile, err := ai.DecodeObject[core.ContractProfile](reply)
	if err != nil {
		return core.ContractProfile{}, err
	}

	profile.SearchQueries = cleanQueries(profile.SearchQueries)
	if err := core.ValidateProfile(&profile); err != nil {
		return core.ContractProfile{}, err
	}
	if profile.KeyParties == nil {
		profile.KeyParties = []string{}
	}
	if profile.ImportantClauses == nil {
		profile.ImportantClauses = []string{}
	}
	return profile, nil
}

// cleanQueries trims queries, drops blank ones and keeps at most
// MaxSearchQueries.
func cleanQueries(queries []string) []string {
	cleaned := make([]string, 0, min(len(queries), MaxSearchQueries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		cleaned = append(cleaned, q)
		if len(cleaned) == MaxSearchQueries {
			break
		}
	}
	return cleaned
}
