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
	"fmt"

	"github.com/poiesic/contractsearch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalSearchRun serializes a SearchRun to bytes.
func MarshalSearchRun(run *core.SearchRun) []byte {
	buf := make([]byte, core.SearchRunMUS.Size(*run))
	core.SearchRunMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalSearchRun deserializes a SearchRun from bytes.
func UnmarshalSearchRun(data []byte) (*core.SearchRun, error) {
	run, _, err := core.SearchRunMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: search run: %w", ErrSerializationFailed, err)
	}
	return &run, nil
}

// MarshalSearchHits serializes a list of hits to bytes.
func MarshalSearchHits(hits []core.SearchHit) []byte {
	buf := make([]byte, core.SearchHitsMUS.Size(hits))
	core.SearchHitsMUS.Marshal(hits, buf)
	return buf
}

// UnmarshalSearchHits deserializes a list of hits from bytes.
func UnmarshalSearchHits(data []byte) ([]core.SearchHit, error) {
	hits, _, err := core.SearchHitsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: search hits: %w", ErrSerializationFailed, err)
	}
	return hits, nil
}
