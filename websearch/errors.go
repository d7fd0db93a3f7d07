package websearch

import "errors"

var (
	// ErrBackendRequired is returned when a Client is built without a Backend.
	ErrBackendRequired = errors.New("search backend is required")

	// ErrCacheRequired is returned when a CachedBackend is built without a cache.
	ErrCacheRequired = errors.New("hit cache is required")

	// ErrUnexpectedStatus is returned when the search engine answers with a
	// non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected search response status")
)
