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

// Package search finds documents similar to a legal contract.
//
// The Searcher chains three stages:
//   - Analysis turns the contract into a profile with search queries
//   - Web search runs those queries and tags each hit with its source
//   - Ranking scores every hit against the contract and keeps the best
//
// Each stage falls back to a keyword heuristic when its model call fails, so
// FindSimilar only reports missing input and cancellation. A SearchMonitor
// can observe the stages, and a storage.RunRepository can record every run.
package search
