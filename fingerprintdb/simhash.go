package fingerprintdb

import "hash/fnv"

// SimHash64 computes a 64-bit similarity hash over a method's
// sequencebb output (one opcode-name string per long basic block,
// spec.md §4.3/§6), grounded on original_source/elsim/db.py's use of
// the hashes.simhash library and on the weighted-bit-vector technique
// shown by other_examples' SimHash (shwoo03-Project's
// internal/cache/similarity.go): each block contributes +1/-1 to every
// bit position according to its own fnv64a hash, and the fingerprint
// bit is set wherever the aggregate vote is non-negative.
func SimHash64(blocks []string) uint64 {
	var votes [64]int

	for _, b := range blocks {
		h := fnv.New64a()
		_, _ = h.Write([]byte(b))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if (hash>>uint(i))&1 == 1 {
				votes[i]++
			} else {
				votes[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if votes[i] >= 0 {
			fingerprint |= 1 << uint(i)
		}
	}
	return fingerprint
}

// HammingDistance counts the differing bits between two fingerprints.
func HammingDistance(a, b uint64) int {
	x := a ^ b
	count := 0
	for x != 0 {
		count++
		x &= x - 1
	}
	return count
}
