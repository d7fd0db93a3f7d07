package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *ContractProfile
		wantErr error
	}{
		{
			name:    "valid profile",
			profile: &ContractProfile{ContractType: "NDA", SearchQueries: []string{"NDA contract example"}},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "no queries",
			profile: &ContractProfile{ContractType: "NDA"},
			wantErr: ErrEmptySearchQueries,
		},
		{
			name:    "only blank queries",
			profile: &ContractProfile{SearchQueries: []string{"", "   "}},
			wantErr: ErrEmptySearchQueries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestValidateSearchHit(t *testing.T) {
	valid := &SearchHit{URL: "https://example.com", Source: SourceLegalResource}
	assert.NoError(t, ValidateSearchHit(valid))

	assert.ErrorIs(t, ValidateSearchHit(nil), ErrInvalidSearchHit)
	assert.ErrorIs(t, ValidateSearchHit(&SearchHit{Source: SourceGovernment}), ErrEmptyURL)
	assert.ErrorIs(t, ValidateSearchHit(&SearchHit{URL: "https://x", Source: "nope"}), ErrInvalidSource)
}

func TestValidateRankedResult(t *testing.T) {
	hit := SearchHit{URL: "https://example.com", Source: SourceLegalResource}

	assert.NoError(t, ValidateRankedResult(&RankedResult{SearchHit: hit, SimilarityScore: 42, Explanation: "ok"}))
	assert.ErrorIs(t, ValidateRankedResult(&RankedResult{SearchHit: hit, SimilarityScore: 101, Explanation: "ok"}), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateRankedResult(&RankedResult{SearchHit: hit, SimilarityScore: -1, Explanation: "ok"}), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateRankedResult(&RankedResult{SearchHit: hit, SimilarityScore: 10}), ErrInvalidSearchHit)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-5))
	assert.Equal(t, 100.0, ClampScore(250))
	assert.Equal(t, 42.5, ClampScore(42.5))
	assert.Equal(t, 0.0, ClampScore(math.NaN()))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "", Truncate("abc", 0))
	// Multi-byte runes are never split.
	assert.Equal(t, "§1", Truncate("§1 Definitions", 2))
}

func TestIDFromContent(t *testing.T) {
	assert.Equal(t, IDFromContent("contract text"), IDFromContent("contract text"))
	assert.NotEqual(t, IDFromContent("contract one"), IDFromContent("contract two"))
}
