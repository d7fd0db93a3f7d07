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
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/contractsearch/core"
)

const (
	runRecordPrefix      = "runrec"
	runDatePrefix        = "rundt"
	runFingerprintPrefix = "runfp"
	runIDSeq             = "runrecseq"
	hitCachePrefix       = "hitc"
)

// makeRunKey generates a key for a search run by ID.
func makeRunKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runRecordPrefix, id))
}

// makeRunDateKey generates a composite key for the creation time index.
// Format: prefix:timestamp:id
func makeRunDateKey(timestamp time.Time, id core.ID) []byte {
	buf := makePartialRunDateKey(timestamp)
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// makePartialRunDateKey generates a partial key for time ordered scans.
// Format: prefix:timestamp
func makePartialRunDateKey(timestamp time.Time) []byte {
	prefix := runDatePrefix + ":"
	buf := make([]byte, 0, len(prefix)+16)
	buf = append(buf, prefix...)
	// BigEndian so lexicographic order matches chronological order
	return binary.BigEndian.AppendUint64(buf, uint64(timestamp.UnixMicro()))
}

// makeRunFingerprintKey generates a composite key for the fingerprint index.
// Format: prefix:fingerprint:id
func makeRunFingerprintKey(fingerprint, id core.ID) []byte {
	buf := makePartialRunFingerprintKey(fingerprint)
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// makePartialRunFingerprintKey generates a partial key for fingerprint queries.
// Format: prefix:fingerprint
func makePartialRunFingerprintKey(fingerprint core.ID) []byte {
	prefix := runFingerprintPrefix + ":"
	buf := make([]byte, 0, len(prefix)+16)
	buf = append(buf, prefix...)
	return binary.BigEndian.AppendUint64(buf, uint64(fingerprint))
}

// makeHitCacheKey generates a key for a cached search result set.
func makeHitCacheKey(key string) []byte {
	return []byte(hitCachePrefix + ":" + key)
}
