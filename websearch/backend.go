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

import "context"

// RawHit is one organic result as returned by a search engine.
type RawHit struct {
	Title string
	URL   string
	Body  string
}

// Backend executes a single web search.
// Implementations must be thread-safe for concurrent use.
type Backend interface {
	// Search returns at most maxResults hits for query in the given region
	// (for example "us-en").
	Search(ctx context.Context, query string, maxResults int, region string) ([]RawHit, error)

	// Name identifies the backend in logs and cache keys.
	Name() string
}

// BackendFunc adapts an ordinary function to a Backend named "func".
type BackendFunc func(ctx context.Context, query string, maxResults int, region string) ([]RawHit, error)

// Search calls f.
func (f BackendFunc) Search(ctx context.Context, query string, maxResults int, region string) ([]RawHit, error) {
	return f(ctx, query, maxResults, region)
}

// Name implements Backend.
func (f BackendFunc) Name() string {
	return "func"
}
