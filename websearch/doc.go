// Package websearch discovers candidate documents on the open web.
//
// Client takes the search queries of a contract profile, sends at most
// five of them (each suffixed with " legal document contract") to a
// Backend, and tags every hit with its source category and originating
// query. Queries run sequentially with a pause after each, and a failing
// query only loses its own hits.
//
// DuckDuckGo is the production Backend. CachedBackend memoizes any Backend
// in a storage.HitCache.
//
//	client, err := websearch.NewClient(websearch.NewDuckDuckGo())
//	hits := client.Search(ctx, profile.SearchQueries)
package websearch
