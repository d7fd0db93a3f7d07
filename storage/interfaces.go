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

package storage

import (
	"context"

	"github.com/poiesic/contractsearch/core"
)

// RunRepository persists completed similarity searches.
// Implementations must be thread-safe and support concurrent access.
type RunRepository interface {
	// AddRun stores a run. A new ID is always generated from a sequence and
	// CreatedAt is set when zero. Returns the run with both populated.
	AddRun(ctx context.Context, run *core.SearchRun) (*core.SearchRun, error)

	// GetRun retrieves a single run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.SearchRun, error)

	// GetRecentRuns retrieves up to limit runs, most recent first.
	// Returns ErrInvalidQuery if limit is not positive.
	GetRecentRuns(ctx context.Context, limit int) ([]*core.SearchRun, error)

	// GetRunsByFingerprint retrieves every run of the contract with the
	// given fingerprint (core.IDFromContent of its text), oldest first.
	GetRunsByFingerprint(ctx context.Context, fingerprint core.ID) ([]*core.SearchRun, error)

	// DeleteRuns removes runs and their index entries.
	// Returns ErrNotFound if any run doesn't exist.
	DeleteRuns(ctx context.Context, ids ...core.ID) error

	// Close releases resources held by the repository.
	Close() error
}

// HitCache memoizes web search results by an opaque key.
// Implementations must be thread-safe and support concurrent access.
type HitCache interface {
	// GetHits returns the cached hits for key.
	// Returns ErrNotFound on a miss, including expired entries.
	GetHits(ctx context.Context, key string) ([]core.SearchHit, error)

	// PutHits stores hits under key, replacing any previous entry.
	PutHits(ctx context.Context, key string, hits []core.SearchHit) error

	// Close releases resources held by the cache.
	Close() error
}
