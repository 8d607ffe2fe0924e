// Package element implements the element adapter (spec.md §4.4,
// component C4): wrapping one raw domain item (method, basic block,
// string, sentence) into an Element carrying a 128-bit content hash
// and a lazily computed signature and entropy.
package element

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// Side identifies which of the two input iterables an Element was
// built from (spec §3: "a reference to its source iterable, used as
// a scoping key in C6"). It lives here rather than in package compare
// so that filter — which needs it in MakeElement's signature — does
// not have to import compare, which itself imports filter.
type Side int

const (
	Side1 Side = 1
	Side2 Side = 2
)

// Element is the shared interface every concrete adapter implements
// (spec §9 "Polymorphic elements": "express elements as a tagged
// variant ... a shared Element trait exposes buffer(), hash(),
// signature(), length()").
type Element interface {
	// Buffer is the canonical byte representation the content hash is
	// derived from.
	Buffer() []byte
	// Hash is the 128-bit content hash of Buffer, computed once and
	// cached (spec §3: "hash ... immutable once observed").
	Hash() [16]byte
	// Signature is the lazily computed byte string used for NCD; it
	// may differ from Buffer.
	Signature() []byte
	// Entropy is the Shannon entropy of Signature, lazily computed
	// alongside it.
	Entropy() float64
	// Length is the size metric used by size-based skip rules.
	Length() int
	// Info is a short human-readable description for the reporter.
	Info() string
	// Side reports which input iterable this element came from.
	Side() Side
}

// signatureFunc lazily produces an element's signature bytes and
// their Shannon entropy; memoization of the result lives in base, not
// in the closure, so the same signatureFunc can be shared safely. A
// signature build failure (e.g. a method whose grammar references a
// symbol the upstream view can't resolve) degrades to an empty
// signature rather than panicking; concrete types expose the error
// via SignatureError for callers that need to distinguish the two.
type signatureFunc func() ([]byte, float64, error)

// base implements the common lazy-memoization machinery (spec §9
// "Laziness") shared by every concrete Element.
type base struct {
	once   sync.Once
	hash   [16]byte
	buffer []byte

	sigOnce sync.Once
	sig     []byte
	entropy float64
	sigErr  error

	side Side
}

// SignatureError returns any error encountered the first time the
// signature was computed (nil if it succeeded or was never accessed).
func (b *base) SignatureError() error { return b.sigErr }

func (b *base) initHash(buffer []byte) {
	b.once.Do(func() {
		b.buffer = buffer
		h1, h2 := murmur3.Sum128(buffer)
		putUint128(&b.hash, h1, h2)
	})
}

func putUint128(dst *[16]byte, h1, h2 uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(h1 >> (8 * (7 - i)))
		dst[8+i] = byte(h2 >> (8 * (7 - i)))
	}
}

func (b *base) Buffer() []byte { return b.buffer }
func (b *base) Hash() [16]byte { return b.hash }
func (b *base) Length() int    { return len(b.buffer) }
func (b *base) Side() Side     { return b.side }

func (b *base) signature(compute signatureFunc) ([]byte, float64, error) {
	b.sigOnce.Do(func() {
		b.sig, b.entropy, b.sigErr = compute()
	})
	return b.sig, b.entropy, b.sigErr
}
