package ranking

import (
	"context"
	"strconv"

	"github.com/poiesic/contractsearch/core"
)

// HeuristicRanker scores every hit with Score. It makes no external calls
// and never pauses.
type HeuristicRanker struct{}

// NewHeuristicRanker creates a keyword ranker.
func NewHeuristicRanker() *HeuristicRanker {
	return &HeuristicRanker{}
}

// Rank implements Ranker.
func (h *HeuristicRanker) Rank(_ context.Context, contract string, hits []core.SearchHit) []core.RankedResult {
	results := make([]core.RankedResult, 0, len(hits))
	for _, hit := range hits {
		score := Score(contract, hit)
		results = append(results, core.RankedResult{
			SearchHit:       hit,
			SimilarityScore: score,
			Explanation:     "Keyword match score: " + strconv.FormatFloat(score, 'f', -1, 64),
		})
	}
	return finalize(results)
}
