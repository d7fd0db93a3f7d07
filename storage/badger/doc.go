// Package badger implements the storage interfaces on BadgerDB.
//
// Key layout:
//
//	runrec:<id>                         SearchRun value
//	rundt:<created micros><id>          run ID, time index
//	runfp:<fingerprint><id>             run ID, fingerprint index
//	hitc:<cache key>                    []SearchHit value with TTL
//
// Index key components are big-endian so lexicographic order matches
// numeric order.
package badger
