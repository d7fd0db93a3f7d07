package ranking

import (
	"strings"

	"github.com/poiesic/contractsearch/core"
)

// CredibleSourceBonus is added to the keyword score of hits from SEC,
// court or government sources.
const CredibleSourceBonus = 20.0

// Score rates a hit against the contract by word overlap:
// |A∩B| / max(|A|, |B|, 1) * 100 over the lower-cased whitespace token
// sets of the contract (A) and the hit's title plus snippet (B), plus
// CredibleSourceBonus for credible sources, capped at 100.
func Score(contract string, hit core.SearchHit) float64 {
	contractWords := wordSet(contract)
	hitWords := wordSet(hit.Title + " " + hit.Snippet)

	common := 0
	for w := range hitWords {
		if _, ok := contractWords[w]; ok {
			common++
		}
	}

	score := float64(common) / float64(max(len(contractWords), len(hitWords), 1)) * 100
	if hit.Source.IsCredible() {
		score += CredibleSourceBonus
	}
	return min(score, core.MaxScore)
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
