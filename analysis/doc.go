// Package analysis derives a ContractProfile, including the web search
// queries, from raw contract text.
//
// Two implementations satisfy Analyzer:
//
//   - HeuristicAnalyzer: keyword classification and fixed query templates
//   - LLMAnalyzer: asks a language model, falling back to the heuristic
//     when the model fails or returns nothing usable
//
// New picks between them based on whether a model is configured.
//
//	analyzer := analysis.New(provider.Generator(), analysis.WithLogger(logger))
//	profile := analyzer.Analyze(ctx, contractText)
package analysis
