// internal/engine/hash.go
package engine

import "hash/fnv"

// listingHash reduces a listing identifier to a stable 64-bit value.
// Every fallback value in the estimation path is derived from this hash
// instead of a random source, so re-running an estimator on the same
// input always yields the same output.
func listingHash(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// hashInRange maps an identifier into [lo, hi). hi must be > lo.
func hashInRange(id string, lo, hi int) int {
	return lo + int(listingHash(id)%uint64(hi-lo))
}
