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

package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/storage"
)

// HitCache implements storage.HitCache for BadgerDB. Entries expire through
// BadgerDB's native TTL, so expired keys simply stop being visible.
type HitCache struct {
	backend *Backend
	ttl     time.Duration
}

var _ storage.HitCache = (*HitCache)(nil)

// NewHitCache creates a cache whose entries live for ttl.
// A non-positive ttl keeps entries until overwritten.
func NewHitCache(backend *Backend, ttl time.Duration) *HitCache {
	return &HitCache{
		backend: backend,
		ttl:     ttl,
	}
}

// GetHits returns the cached hits for key or storage.ErrNotFound.
func (c *HitCache) GetHits(ctx context.Context, key string) ([]core.SearchHit, error) {
	var hits []core.SearchHit
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeHitCacheKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			hits, unmarshalErr = storage.UnmarshalSearchHits(val)
			return unmarshalErr
		})
	}, false)
	return hits, err
}

// PutHits stores hits under key. An empty result set is cached too.
func (c *HitCache) PutHits(ctx context.Context, key string, hits []core.SearchHit) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeHitCacheKey(key), storage.MarshalSearchHits(hits))
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the backend owns the database.
func (c *HitCache) Close() error {
	return nil
}
