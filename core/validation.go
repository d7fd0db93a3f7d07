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


package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinScore and MaxScore bound every similarity score.
	MinScore = 0.0
	MaxScore = 100.0
)

// ValidateProfile checks that a profile can drive a web search.
func ValidateProfile(profile *ContractProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	for _, q := range profile.SearchQueries {
		if strings.TrimSpace(q) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptySearchQueries)
}

// ValidateSearchHit checks the fields every hit must carry.
func ValidateSearchHit(hit *SearchHit) error {
	if hit == nil {
		return fmt.Errorf("%w: hit is nil", ErrInvalidSearchHit)
	}

	if hit.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSearchHit, ErrEmptyURL)
	}

	if !hit.Source.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSearchHit, ErrInvalidSource, hit.Source)
	}

	return nil
}

// ValidateRankedResult checks the score bounds and explanation of a result.
func ValidateRankedResult(result *RankedResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidSearchHit)
	}
	if err := ValidateSearchHit(&result.SearchHit); err != nil {
		return err
	}
	if result.SimilarityScore < MinScore || result.SimilarityScore > MaxScore {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, result.SimilarityScore)
	}
	if result.Explanation == "" {
		return fmt.Errorf("%w: explanation is empty", ErrInvalidSearchHit)
	}
	return nil
}

// ClampScore bounds a score to [MinScore, MaxScore].
func ClampScore(score float64) float64 {
	if score != score { // NaN
		return MinScore
	}
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Truncate returns at most n runes of text.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
