// Package compressor implements the similarity engine's compressor
// façade (spec.md §4.1, component C1): a uniform interface over seven
// byte compressors used to compute compressed-length statistics,
// Shannon entropy, Levenshtein distance, and (where a decompressor is
// available) an approximate logical-depth metric.
package compressor

import (
	"sync"

	"github.com/gosimilarity/elsim/elsimerr"
)

// Type enumerates the supported codecs.
type Type int

const (
	ZLIB Type = iota
	BZ2
	SMAZ
	LZMA
	XZ
	SNAPPY
	VCBLOCKSORT
)

func (t Type) String() string {
	switch t {
	case ZLIB:
		return "ZLIB"
	case BZ2:
		return "BZ2"
	case SMAZ:
		return "SMAZ"
	case LZMA:
		return "LZMA"
	case XZ:
		return "XZ"
	case SNAPPY:
		return "SNAPPY"
	case VCBLOCKSORT:
		return "VCBLOCKSORT"
	default:
		return "UNKNOWN"
	}
}

// ByName resolves a codec by its upper-case name, mirroring the
// original Compress.by_name helper.
func ByName(name string) (Type, bool) {
	switch name {
	case "ZLIB":
		return ZLIB, true
	case "BZ2":
		return BZ2, true
	case "SMAZ":
		return SMAZ, true
	case "LZMA":
		return LZMA, true
	case "XZ":
		return XZ, true
	case "SNAPPY":
		return SNAPPY, true
	case "VCBLOCKSORT":
		return VCBLOCKSORT, true
	default:
		return 0, false
	}
}

// codec is the native interface a compression backend must implement
// (spec §6 "Compressor codecs"). decompress reports ok=false when the
// codec offers no decompressor at all, rather than returning an error,
// so callers like LogicalDepth can reject it up front.
type codec interface {
	compress(level int, data []byte) (int, error)
	decompress(data []byte) (out []byte, ok bool, err error)
	// levelAware reports whether Level affects this codec; SNAPPY,
	// SMAZ, and VCBLOCKSORT ignore it silently per spec §4.1.
	levelAware() bool
	// supportsDecompress reports whether decompress is implemented at
	// all, independent of any particular input.
	supportsDecompress() bool
}

var codecTable = map[Type]codec{
	ZLIB:        zlibCodec{},
	BZ2:         bzip2Codec{},
	SMAZ:        smazCodec{},
	LZMA:        lzmaCodec{},
	XZ:          xzCodec{},
	SNAPPY:      snappyCodec{},
	VCBLOCKSORT: blockSortCodec{},
}

// Facade is the uniform compressor façade. It is safe for concurrent
// read-only use (Compress/Entropy/Levenshtein/LogicalDepth) once
// configured; SetType/SetLevel require exclusive access and callers
// must serialise mutation against reads (spec §5).
type Facade struct {
	mu    sync.RWMutex
	ctype Type
	level int
}

// New returns a Facade defaulted to ZLIB at level 9, matching the
// SIMILARITYBase default in the original implementation.
func New() *Facade {
	return &Facade{ctype: ZLIB, level: 9}
}

// Clone returns an independent Facade with the same type/level and no
// shared mutable state, for per-worker use when Phase C of the
// comparison engine is parallelised (spec §5).
func (f *Facade) Clone() *Facade {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return &Facade{ctype: f.ctype, level: f.level}
}

// SetType selects the active codec.
func (f *Facade) SetType(t Type) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctype = t
}

// Type returns the active codec.
func (f *Facade) Type() Type {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ctype
}

// SetLevel sets the compression level. Levels outside 1-9 fail with
// InvalidLevel; the value is otherwise accepted even for codecs that
// ignore it (spec §4.1: "Level affects BZ2, ZLIB, LZMA only; other
// codecs ignore it silently").
func (f *Facade) SetLevel(level int) error {
	if level < 1 || level > 9 {
		return elsimerr.Newf(elsimerr.InvalidLevel, "level must be between 1 and 9, got %d", level)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.level = level
	return nil
}

// Level returns the active compression level.
func (f *Facade) Level() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.level
}

func (f *Facade) current() (codec, Type, int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return codecTable[f.ctype], f.ctype, f.level
}

// Compress returns the length in bytes of the compressed form of
// data. It never allocates more than O(len(data)) peak working
// memory, since every codec streams into an in-memory buffer sized to
// the input.
func (f *Facade) Compress(data []byte) (int, error) {
	c, t, level := f.current()
	n, err := c.compress(level, data)
	if err != nil {
		return 0, elsimerr.WrapCodec(elsimerr.CodecFailure, t.String(), err)
	}
	return n, nil
}

// Decompress returns the decompressed form of data, or ok=false if
// the active codec has no decompressor.
func (f *Facade) Decompress(data []byte) (out []byte, ok bool, err error) {
	c, t, _ := f.current()
	out, ok, err = c.decompress(data)
	if err != nil {
		return nil, ok, elsimerr.WrapCodec(elsimerr.CodecFailure, t.String(), err)
	}
	return out, ok, nil
}

// SupportsDecompress reports whether the active codec can decompress.
func (f *Facade) SupportsDecompress() bool {
	c, _, _ := f.current()
	return c.supportsDecompress()
}
