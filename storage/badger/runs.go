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
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	idSeq, err := backend.GetSequence(runIDSeq)
	if err != nil {
		return nil, err
	}

	return &RunRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RunRepository) Close() error {
	return r.idSeq.Release()
}

// AddRun stores a run with a freshly generated ID.
func (r *RunRepository) AddRun(ctx context.Context, run *core.SearchRun) (*core.SearchRun, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		run.Id = core.ID(nextID)

		if run.CreatedAt.IsZero() {
			run.CreatedAt = time.Now().UTC()
		}
		// Stored with microsecond precision
		run.CreatedAt = run.CreatedAt.Truncate(time.Microsecond)

		if err := tx.Set(makeRunKey(run.Id), storage.MarshalSearchRun(run)); err != nil {
			return err
		}
		if err := tx.Set(makeRunDateKey(run.CreatedAt, run.Id), storage.MarshalID(run.Id)); err != nil {
			return err
		}
		if err := tx.Set(makeRunFingerprintKey(run.Fingerprint, run.Id), storage.MarshalID(run.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRun retrieves a single run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.SearchRun, error) {
	var result *core.SearchRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRun(tx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRecentRuns retrieves up to limit runs, most recent first.
func (r *RunRepository) GetRecentRuns(ctx context.Context, limit int) ([]*core.SearchRun, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration starts from the last key at or before the seek key
		prefix := []byte(runDatePrefix + ":")
		startKey := makeRunDateKey(time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC), core.ID(^uint64(0)))

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}
			run, err := r.runFromIndex(tx, iter.Item())
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRunsByFingerprint retrieves every run of one contract, oldest first.
func (r *RunRepository) GetRunsByFingerprint(ctx context.Context, fingerprint core.ID) ([]*core.SearchRun, error) {
	var results []*core.SearchRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialRunFingerprintKey(fingerprint)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			run, err := r.runFromIndex(tx, iter.Item())
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteRuns removes runs by their IDs.
func (r *RunRepository) DeleteRuns(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			run, err := readRun(tx, id)
			if err != nil {
				return err
			}
			if run == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeRunDateKey(run.CreatedAt, run.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeRunFingerprintKey(run.Fingerprint, run.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeRunKey(run.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// runFromIndex resolves an index entry to its run.
func (r *RunRepository) runFromIndex(tx *badger.Txn, item *badger.Item) (*core.SearchRun, error) {
	var runID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		runID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return readRun(tx, runID)
}

// readRun returns nil, nil when the run doesn't exist.
func readRun(tx *badger.Txn, id core.ID) (*core.SearchRun, error) {
	item, err := tx.Get(makeRunKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var run *core.SearchRun
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		run, unmarshalErr = storage.UnmarshalSearchRun(val)
		return unmarshalErr
	})
	return run, err
}
