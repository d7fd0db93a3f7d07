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
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ErrInvalidLength is returned when an encoded slice length is negative.
var ErrInvalidLength = errors.New("invalid encoded length")

// serializer is the subset of the mus-go serializer contract used here.
type serializer[T any] interface {
	Marshal(v T, bs []byte) (n int)
	Unmarshal(bs []byte) (v T, n int, err error)
	Size(v T) (size int)
}

// Serializers for the persisted types. Timestamps are stored as Unix
// microseconds, scores as IEEE-754 bits.
var (
	IDMUS              = idMUS{}
	StringsMUS         = sliceMUS[string]{elem: ord.String}
	ContractProfileMUS = contractProfileMUS{}
	SearchHitMUS       = searchHitMUS{}
	SearchHitsMUS      = sliceMUS[SearchHit]{elem: SearchHitMUS}
	RankedResultMUS    = rankedResultMUS{}
	RankedResultsMUS   = sliceMUS[RankedResult]{elem: RankedResultMUS}
	SearchRunMUS       = searchRunMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type sliceMUS[T any] struct {
	elem serializer[T]
}

func (s sliceMUS[T]) Marshal(v []T, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, e := range v {
		n += s.elem.Marshal(e, bs[n:])
	}
	return n
}

func (s sliceMUS[T]) Unmarshal(bs []byte) (v []T, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	// Every element occupies at least one byte.
	if length < 0 || length > len(bs)-n {
		return nil, n, ErrInvalidLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]T, length)
	for i := range v {
		var n1 int
		v[i], n1, err = s.elem.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (s sliceMUS[T]) Size(v []T) (size int) {
	size = varint.Int.Size(len(v))
	for _, e := range v {
		size += s.elem.Size(e)
	}
	return size
}

type contractProfileMUS struct{}

func (contractProfileMUS) Marshal(v ContractProfile, bs []byte) (n int) {
	n = ord.String.Marshal(v.ContractType, bs)
	n += ord.String.Marshal(v.Industry, bs[n:])
	n += StringsMUS.Marshal(v.KeyParties, bs[n:])
	n += ord.String.Marshal(v.MainPurpose, bs[n:])
	n += StringsMUS.Marshal(v.ImportantClauses, bs[n:])
	n += StringsMUS.Marshal(v.SearchQueries, bs[n:])
	return n
}

func (contractProfileMUS) Unmarshal(bs []byte) (v ContractProfile, n int, err error) {
	var n1 int
	v.ContractType, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Industry, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KeyParties, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MainPurpose, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImportantClauses, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SearchQueries, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (contractProfileMUS) Size(v ContractProfile) (size int) {
	size = ord.String.Size(v.ContractType)
	size += ord.String.Size(v.Industry)
	size += StringsMUS.Size(v.KeyParties)
	size += ord.String.Size(v.MainPurpose)
	size += StringsMUS.Size(v.ImportantClauses)
	return size + StringsMUS.Size(v.SearchQueries)
}

type searchHitMUS struct{}

func (searchHitMUS) Marshal(v SearchHit, bs []byte) (n int) {
	n = ord.String.Marshal(v.Title, bs)
	n += ord.String.Marshal(v.URL, bs[n:])
	n += ord.String.Marshal(v.Snippet, bs[n:])
	n += ord.String.Marshal(string(v.Source), bs[n:])
	n += ord.String.Marshal(v.QueryUsed, bs[n:])
	return n
}

func (searchHitMUS) Unmarshal(bs []byte) (v SearchHit, n int, err error) {
	var (
		n1     int
		source string
	)
	v.Title, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Snippet, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source = SourceCategory(source)
	v.QueryUsed, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (searchHitMUS) Size(v SearchHit) (size int) {
	size = ord.String.Size(v.Title)
	size += ord.String.Size(v.URL)
	size += ord.String.Size(v.Snippet)
	size += ord.String.Size(string(v.Source))
	return size + ord.String.Size(v.QueryUsed)
}

type rankedResultMUS struct{}

func (rankedResultMUS) Marshal(v RankedResult, bs []byte) (n int) {
	n = SearchHitMUS.Marshal(v.SearchHit, bs)
	n += varint.Uint64.Marshal(math.Float64bits(v.SimilarityScore), bs[n:])
	n += ord.String.Marshal(v.Explanation, bs[n:])
	return n
}

func (rankedResultMUS) Unmarshal(bs []byte) (v RankedResult, n int, err error) {
	var (
		n1   int
		bits uint64
	)
	v.SearchHit, n, err = SearchHitMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	bits, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SimilarityScore = math.Float64frombits(bits)
	v.Explanation, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (rankedResultMUS) Size(v RankedResult) (size int) {
	size = SearchHitMUS.Size(v.SearchHit)
	size += varint.Uint64.Size(math.Float64bits(v.SimilarityScore))
	return size + ord.String.Size(v.Explanation)
}

type searchRunMUS struct{}

func (searchRunMUS) Marshal(v SearchRun, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.Fingerprint, bs[n:])
	n += ContractProfileMUS.Marshal(v.Profile, bs[n:])
	n += RankedResultsMUS.Marshal(v.Results, bs[n:])
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (searchRunMUS) Unmarshal(bs []byte) (v SearchRun, n int, err error) {
	var (
		n1     int
		micros int64
	)
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Fingerprint, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Profile, n1, err = ContractProfileMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Results, n1, err = RankedResultsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt = time.UnixMicro(micros).UTC()
	return
}

func (searchRunMUS) Size(v SearchRun) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.Fingerprint)
	size += ContractProfileMUS.Size(v.Profile)
	size += RankedResultsMUS.Size(v.Results)
	return size + varint.Int64.Size(v.CreatedAt.UnixMicro())
}
