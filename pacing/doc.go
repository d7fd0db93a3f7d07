// Package pacing spaces out calls to rate-limited external services.
//
// The web search and ranking stages each take a Pacer and call Pause after
// every external request. Pauses honor context cancellation, so a
// cancelled pipeline stops waiting immediately.
//
//	policy := pacing.Default() // 2s per search query, 1s per ranking batch
//	policy := pacing.None()    // tests
//	policy := pacing.Shared()  // concurrent pipelines share one budget
package pacing
