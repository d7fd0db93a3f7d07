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

import "errors"

var (
	// ErrNoInput indicates that no contract text was supplied.
	// It is the only condition the search pipeline reports to its caller.
	ErrNoInput = errors.New("no contract text provided")

	// ErrInvalidProfile indicates a ContractProfile failed validation.
	ErrInvalidProfile = errors.New("invalid contract profile")

	// ErrEmptySearchQueries indicates a profile carries no usable search queries.
	ErrEmptySearchQueries = errors.New("search queries cannot be empty")

	// ErrInvalidSearchHit indicates a SearchHit failed validation.
	ErrInvalidSearchHit = errors.New("invalid search hit")

	// ErrEmptyURL indicates the URL field of a hit is empty.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrInvalidSource indicates an unknown SourceCategory value.
	ErrInvalidSource = errors.New("invalid source category")

	// ErrScoreOutOfRange indicates a similarity score outside [0, 100].
	ErrScoreOutOfRange = errors.New("similarity score out of range")
)
