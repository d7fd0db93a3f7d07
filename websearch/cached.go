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

package websearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/storage"
)

// CachedBackend decorates a Backend with a storage.HitCache. Successful
// searches are cached; failures are not. Cache errors are logged and the
// wrapped backend is used as if the cache were absent.
type CachedBackend struct {
	backend Backend
	cache   storage.HitCache
	logger  *slog.Logger
}

var _ Backend = (*CachedBackend)(nil)

// NewCachedBackend wraps backend with cache.
func NewCachedBackend(backend Backend, cache storage.HitCache, logger *slog.Logger) (*CachedBackend, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedBackend{
		backend: backend,
		cache:   cache,
		logger:  logger.With("component", "search-cache"),
	}, nil
}

// Name implements Backend.
func (c *CachedBackend) Name() string {
	return c.backend.Name()
}

// Search implements Backend.
func (c *CachedBackend) Search(ctx context.Context, query string, maxResults int, region string) ([]RawHit, error) {
	key := cacheKey(c.backend.Name(), query, maxResults, region)

	cached, err := c.cache.GetHits(ctx, key)
	switch {
	case err == nil:
		c.logger.Debug("cache hit", "query", query)
		return fromSearchHits(cached), nil
	case !errors.Is(err, storage.ErrNotFound):
		c.logger.Warn("cache read failed", "query", query, "err", err)
	}

	hits, err := c.backend.Search(ctx, query, maxResults, region)
	if err != nil {
		return nil, err
	}

	if err := c.cache.PutHits(ctx, key, toSearchHits(hits)); err != nil {
		c.logger.Warn("cache write failed", "query", query, "err", err)
	}
	return hits, nil
}

func cacheKey(backend, query string, maxResults int, region string) string {
	return fmt.Sprintf("%s|%s|%d|%s", backend, region, maxResults, query)
}

func toSearchHits(raw []RawHit) []core.SearchHit {
	hits := make([]core.SearchHit, len(raw))
	for i, r := range raw {
		hits[i] = core.SearchHit{Title: r.Title, URL: r.URL, Snippet: r.Body}
	}
	return hits
}

func fromSearchHits(hits []core.SearchHit) []RawHit {
	raw := make([]RawHit, len(hits))
	for i, h := range hits {
		raw[i] = RawHit{Title: h.Title, URL: h.URL, Body: h.Snippet}
	}
	return raw
}
