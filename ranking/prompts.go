package ranking

import "fmt"

const rankingPromptTemplate = `Original contract type and key info:
%s...

Rank these search results by similarity to the original contract:
%s

For each result, assign a similarity score (0-100) and brief explanation.
Focus on: contract type match, subject matter relevance, source credibility.
Return exactly one entry per result, in the same order.

Return ONLY a JSON array:
[
    {
        "title": "result title",
        "url": "result url",
        "similarity_score": 85,
        "explanation": "why it's similar",
        "source": "source type"
    }
]`

func buildRankingPrompt(excerpt, batchJSON string) string {
	return fmt.Sprintf(rankingPromptTemplate, excerpt, batchJSON)
}
