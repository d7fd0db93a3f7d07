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

// Package storage provides the persistence abstractions for search history
// and the web search cache.
//
// Two repository interfaces decouple the pipeline from the storage engine:
//
//   - RunRepository: completed searches, indexed by time and by contract
//     fingerprint
//   - HitCache: web search results keyed by query, with expiry
//
// storage/badger implements both on BadgerDB. Values are encoded with the
// mus-go serializers in package core.
//
//	backend, err := badger.OpenBackend("/var/lib/contractsearch", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	runs, err := badger.NewRunRepository(backend)
//	cache := badger.NewHitCache(backend, 24*time.Hour)
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
package storage
