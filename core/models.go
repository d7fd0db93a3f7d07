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


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities: stored runs and
// content fingerprints.
type ID uint64

// IDFromContent derives a stable 64-bit identifier from text.
// It is used to fingerprint contract texts and cache keys.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContractProfile is the structured summary of a contract used to drive web search.
type ContractProfile struct {
	ContractType     string   `json:"contract_type"`
	Industry         string   `json:"industry"`
	KeyParties       []string `json:"key_parties"`
	MainPurpose      string   `json:"main_purpose"`
	ImportantClauses []string `json:"important_clauses"`
	SearchQueries    []string `json:"search_queries"`
}

// SearchHit is a single raw web search result, tagged with its provenance
// and the query that produced it.
type SearchHit struct {
	Title     string         `json:"title"`
	URL       string         `json:"url"`
	Snippet   string         `json:"snippet"`
	Source    SourceCategory `json:"source"`
	QueryUsed string         `json:"query_used"`
}

// RankedResult is a SearchHit scored against the original contract.
type RankedResult struct {
	SearchHit
	SimilarityScore float64 `json:"similarity_score"`
	Explanation     string  `json:"explanation"`
}

// SearchRun records one completed similarity search.
type SearchRun struct {
	Id          ID
	Fingerprint ID // IDFromContent of the contract text
	Profile     ContractProfile
	Results     []RankedResult
	CreatedAt   time.Time
}
