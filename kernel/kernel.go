// Package kernel implements the similarity kernel (spec.md §4.2,
// component C2): NCD, NCS, CMID, Kolmogorov and logical-depth on top
// of a compressor façade, with LRU caching of compressed lengths and
// pairwise NCD results.
package kernel

import (
	"hash/adler32"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gosimilarity/elsim/compressor"
	"github.com/gosimilarity/elsim/elsimerr"
)

const (
	defaultLengthCacheSize = 4096
	defaultPairCacheSize   = 4096
)

// lengthEntry is what the length cache stores per Adler-32 key. The
// full key (byteLen, codec, level) is stored alongside the result so
// an Adler-32 collision degrades to a cache miss rather than a wrong
// answer, per spec §4.2 / §9.
type lengthEntry struct {
	byteLen int
	codec   compressor.Type
	level   int
	result  int
}

// pairEntry is the analogous full-key record for the pairwise NCD
// cache, keyed by Adler-32 of the concatenation x‖y.
type pairEntry struct {
	lenX   int
	lenY   int
	codec  compressor.Type
	level  int
	result float64
}

// Kernel wraps a *compressor.Facade plus the two caches spec §4.2
// names. It is safe for concurrent read-only use once configured
// (golang-lru is internally locked, and the facade guards its own
// type/level with a mutex; Kernel adds no lock of its own).
type Kernel struct {
	facade *compressor.Facade

	lengthCache *lru.Cache[uint32, lengthEntry]
	pairCache   *lru.Cache[uint32, pairEntry]
}

// New returns a Kernel over f with default cache sizes.
func New(f *compressor.Facade) *Kernel {
	k, err := NewWithCacheSize(f, defaultLengthCacheSize, defaultPairCacheSize)
	if err != nil {
		// Only returns an error for a non-positive cache size, which
		// never happens with the package constants above.
		panic(err)
	}
	return k
}

// NewWithCacheSize returns a Kernel with explicit cache capacities,
// for callers that want to bound memory more tightly (spec §5:
// "Memory budget is bounded by ... O(cache cap)").
func NewWithCacheSize(f *compressor.Facade, lengthCap, pairCap int) (*Kernel, error) {
	lc, err := lru.New[uint32, lengthEntry](lengthCap)
	if err != nil {
		return nil, elsimerr.Newf(elsimerr.InvalidInput, "length cache: %v", err)
	}
	pc, err := lru.New[uint32, pairEntry](pairCap)
	if err != nil {
		return nil, elsimerr.Newf(elsimerr.InvalidInput, "pair cache: %v", err)
	}
	return &Kernel{facade: f, lengthCache: lc, pairCache: pc}, nil
}

// Facade exposes the underlying compressor for configuration
// (SetType/SetLevel) or for cloning into per-worker kernels.
func (k *Kernel) Facade() *compressor.Facade {
	return k.facade
}

// Clone returns a new Kernel sharing no mutable state, wrapping a
// cloned facade, for parallel use in Phase C of the comparison
// engine (spec §5). Per-worker kernels start with cold caches of
// their own, and nothing merges them back into k's caches.
func (k *Kernel) Clone() *Kernel {
	return New(k.facade.Clone())
}

func (k *Kernel) compressedLength(data []byte) (int, error) {
	t := k.facade.Type()
	level := k.facade.Level()

	key := adler32.Checksum(data)
	if e, ok := k.lengthCache.Get(key); ok {
		if e.byteLen == len(data) && e.codec == t && e.level == level {
			return e.result, nil
		}
		// Adler-32 collision against a different (length, codec,
		// level) key: treat as a miss, per spec §4.2.
	}

	n, err := k.facade.Compress(data)
	if err != nil {
		return 0, err
	}

	k.lengthCache.Add(key, lengthEntry{byteLen: len(data), codec: t, level: level, result: n})
	return n, nil
}

// NCD computes the Normalized Compression Distance between x and y,
// clamped to [0, 1]. Precondition: non-empty x, y; if either is
// empty, NCD returns 1.0 per spec §4.2.
func (k *Kernel) NCD(x, y []byte) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 1.0, nil
	}

	t := k.facade.Type()
	level := k.facade.Level()

	pairKey := adler32.Checksum(append(append([]byte{}, x...), y...))
	if e, ok := k.pairCache.Get(pairKey); ok {
		if e.lenX == len(x) && e.lenY == len(y) && e.codec == t && e.level == level {
			return e.result, nil
		}
	}

	cx, err := k.compressedLength(x)
	if err != nil {
		return 0, err
	}
	cy, err := k.compressedLength(y)
	if err != nil {
		return 0, err
	}
	cxy, err := k.compressedLength(append(append([]byte{}, x...), y...))
	if err != nil {
		return 0, err
	}

	smax := cx
	if cy > smax {
		smax = cy
	}
	smin := cx
	if cy < smin {
		smin = cy
	}

	var res float64
	if smax > 0 {
		res = float64(abs(cxy-smin)) / float64(smax)
	}
	if res > 1.0 {
		res = 1.0
	}
	if res < 0.0 {
		res = 0.0
	}

	k.pairCache.Add(pairKey, pairEntry{lenX: len(x), lenY: len(y), codec: t, level: level, result: res})
	return res, nil
}

// NCS is 1 - NCD.
func (k *Kernel) NCS(x, y []byte) (float64, error) {
	d, err := k.NCD(x, y)
	if err != nil {
		return 0, err
	}
	return 1.0 - d, nil
}

// Kolmogorov approximates Kolmogorov complexity as the compressed
// length of x: a compressor-dependent upper bound, per spec §4.2.
func (k *Kernel) Kolmogorov(x []byte) (int, error) {
	return k.compressedLength(x)
}

// CMID is the compression-based Mutual Inclusion Degree, kept as an
// advisory façade over the same compressed-length primitives; it is
// not used by the default comparison pipeline (spec §4.2, §9 Open
// Questions: "the exact semantics of cmid" is one of the documented
// FIXMEs in the original). This mirrors the shape the original's
// native binding exposes (a single scalar derived from the pairwise
// and individual compressed lengths) without depending on its
// specific undocumented C implementation.
func (k *Kernel) CMID(x, y []byte) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0.0, nil
	}

	cx, err := k.compressedLength(x)
	if err != nil {
		return 0, err
	}
	cy, err := k.compressedLength(y)
	if err != nil {
		return 0, err
	}
	cxy, err := k.compressedLength(append(append([]byte{}, x...), y...))
	if err != nil {
		return 0, err
	}

	denom := cx + cy
	if denom == 0 {
		return 0.0, nil
	}
	mid := float64(cx+cy-cxy) / float64(denom)
	if mid < 0 {
		mid = 0
	}
	if mid > 1 {
		mid = 1
	}
	return mid, nil
}

// LogicalDepth delegates to the facade's approximate Bennett
// logical-depth metric (spec §4.1/§4.2).
func (k *Kernel) LogicalDepth(x []byte, iterations int) (int64, error) {
	d, err := k.facade.LogicalDepth(x, iterations)
	if err != nil {
		return 0, err
	}
	return d.Nanoseconds(), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
