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
	"log/slog"

	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/pacing"
)

const (
	// MaxQueries is how many profile queries are sent to the backend.
	MaxQueries = 5

	// MaxResultsPerQuery is requested from the backend for every query.
	MaxResultsPerQuery = 5

	// DefaultRegion is the backend region code.
	DefaultRegion = "us-en"

	// QuerySuffix is appended to every query to bias results toward
	// legal documents.
	QuerySuffix = " legal document contract"
)

// Client runs the search queries of a contract profile against a Backend,
// one at a time, pausing after each.
type Client struct {
	backend Backend
	pacer   pacing.Pacer
	region  string
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPacer sets the pause taken after every query.
// If not provided, uses pacing.Default().Search.
func WithPacer(p pacing.Pacer) Option {
	return func(c *Client) {
		if p != nil {
			c.pacer = p
		}
	}
}

// WithRegion sets the backend region code.
// An empty region keeps DefaultRegion.
func WithRegion(region string) Option {
	return func(c *Client) {
		if region != "" {
			c.region = region
		}
	}
}

// WithLogger sets a custom logger for the client.
// If not provided, uses slog.Default() with component="websearch".
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.With("component", "websearch")
		}
	}
}

// NewClient creates a search client over backend.
func NewClient(backend Backend, opts ...Option) (*Client, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	c := &Client{
		backend: backend,
		pacer:   pacing.Default().Search,
		region:  DefaultRegion,
		logger:  slog.Default().With("component", "websearch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// queryOutcome is the result of one backend call.
type queryOutcome struct {
	query string
	hits  []core.SearchHit
	err   error
}

// fold appends the outcome's hits to acc. A failed query contributes
// nothing.
func (o queryOutcome) fold(acc []core.SearchHit, logger *slog.Logger) []core.SearchHit {
	if o.err != nil {
		logger.Warn("search query failed", "query", o.query, "err", o.err)
		return acc
	}
	return append(acc, o.hits...)
}

// Search runs at most MaxQueries queries and returns every hit in query
// order. It never fails: a query that errors contributes no hits. The
// pacer runs after every query, whether or not it succeeded. A cancelled
// context stops the loop and returns what was gathered.
func (c *Client) Search(ctx context.Context, queries []string) []core.SearchHit {
	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}

	hits := []core.SearchHit{}
	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}
		hits = c.runQuery(ctx, query).fold(hits, c.logger)
		if err := c.pacer.Pause(ctx); err != nil {
			break
		}
	}

	c.logger.Debug("web search completed", "queries", len(queries), "hits", len(hits))
	return hits
}

func (c *Client) runQuery(ctx context.Context, query string) queryOutcome {
	raw, err := c.backend.Search(ctx, query+QuerySuffix, MaxResultsPerQuery, c.region)
	if err != nil {
		return queryOutcome{query: query, err: err}
	}

	hits := make([]core.SearchHit, 0, len(raw))
	for _, r := range raw {
		hits = append(hits, core.SearchHit{
			Title:     r.Title,
			URL:       r.URL,
			Snippet:   r.Body,
			Source:    core.ClassifySource(r.URL),
			QueryUsed: query,
		})
	}
	return queryOutcome{query: query, hits: hits}
}
