// Package ranking scores web search hits against the original contract
// and keeps the best MaxResults.
//
// Two implementations satisfy Ranker:
//
//   - HeuristicRanker: word-overlap Score with a bonus for credible sources
//   - LLMRanker: asks a language model to score batches of BatchSize hits,
//     substituting DefaultScore for any batch it cannot use
//
// New picks between them based on whether a model is configured. Both
// return results stable-sorted by descending score.
package ranking
