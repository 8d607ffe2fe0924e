package compressor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gosimilarity/elsim/elsimerr"
)

func allTypes() []Type {
	return []Type{ZLIB, BZ2, SMAZ, LZMA, XZ, SNAPPY, VCBLOCKSORT}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"ZLIB", ZLIB, true},
		{"VCBLOCKSORT", VCBLOCKSORT, true},
		{"NOPE", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ByName(tc.name)
			if ok != tc.ok {
				t.Fatalf("ByName(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("ByName(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestFacadeDefaults(t *testing.T) {
	f := New()
	if f.Type() != ZLIB {
		t.Fatalf("default type = %v, want ZLIB", f.Type())
	}
	if f.Level() != 9 {
		t.Fatalf("default level = %d, want 9", f.Level())
	}
}

func TestSetLevelRejectsOutOfRange(t *testing.T) {
	f := New()
	if err := f.SetLevel(0); err == nil {
		t.Fatal("expected error for level 0")
	}
	if err := f.SetLevel(10); err == nil {
		t.Fatal("expected error for level 10")
	}
	if err := f.SetLevel(5); err != nil {
		t.Fatalf("unexpected error for level 5: %v", err)
	}
	if f.Level() != 5 {
		t.Fatalf("level = %d, want 5", f.Level())
	}
}

func TestCompressRoundTripsWhereSupported(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 20)

	for _, typ := range allTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			f := New()
			f.SetType(typ)

			n, err := f.Compress(data)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if n <= 0 {
				t.Fatalf("Compress returned non-positive length %d", n)
			}

			if !f.SupportsDecompress() {
				return
			}

			// Decompress needs the actual compressed bytes, which the
			// length-only Compress API doesn't expose; exercise the
			// codec's own round trip via encodeForDepth instead.
			c, _, level := f.current()
			encoded, err := encodeForDepth(c, level, data)
			if err != nil {
				t.Fatalf("encodeForDepth: %v", err)
			}
			out, ok, err := f.Decompress(encoded)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !ok {
				t.Fatalf("Decompress reported ok=false for a codec advertising support")
			}
			if !bytes.Equal(out, data) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(out), len(data))
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := New()
	f.SetType(XZ)
	f.SetLevel(3)

	clone := f.Clone()
	f.SetType(SNAPPY)
	f.SetLevel(7)

	if clone.Type() != XZ || clone.Level() != 3 {
		t.Fatalf("clone mutated: type=%v level=%d, want XZ/3", clone.Type(), clone.Level())
	}
}

func TestLevelAwareCodecsChangeOutputSize(t *testing.T) {
	data := bytes.Repeat([]byte("aaaaaaaaaa bbbbbbbbbb cccccccccc "), 200)

	for _, typ := range []Type{ZLIB, BZ2, LZMA} {
		t.Run(typ.String(), func(t *testing.T) {
			low := New()
			low.SetType(typ)
			low.SetLevel(1)
			lowN, err := low.Compress(data)
			if err != nil {
				t.Fatalf("Compress level 1: %v", err)
			}

			high := New()
			high.SetType(typ)
			high.SetLevel(9)
			highN, err := high.Compress(data)
			if err != nil {
				t.Fatalf("Compress level 9: %v", err)
			}

			if highN > lowN {
				t.Fatalf("level 9 produced a larger output (%d) than level 1 (%d)", highN, lowN)
			}
		})
	}
}

// noDecompressCodec is a test-only codec with no decompressor.
type noDecompressCodec struct{}

func (noDecompressCodec) compress(level int, data []byte) (int, error)  { return len(data), nil }
func (noDecompressCodec) decompress(data []byte) ([]byte, bool, error) { return nil, false, nil }
func (noDecompressCodec) levelAware() bool                              { return false }
func (noDecompressCodec) supportsDecompress() bool                      { return false }

func TestLogicalDepthRejectsUnsupportedDecompress(t *testing.T) {
	// Every codec in this package currently supports decompress, so
	// this test documents the guard via a fake unsupported codec
	// registered under an unused Type value.
	const fakeType = Type(100)
	codecTable[fakeType] = noDecompressCodec{}
	defer delete(codecTable, fakeType)

	fake := New()
	fake.SetType(fakeType)
	if _, err := fake.LogicalDepth([]byte("hello"), 5); !errors.Is(err, elsimerr.New(elsimerr.UnsupportedOperation, "")) {
		t.Fatalf("LogicalDepth on a codec without decompress: err = %v, want UnsupportedOperation", err)
	}

	f := New()
	f.SetType(SMAZ)
	if !f.SupportsDecompress() {
		t.Skip("SMAZ unexpectedly reports no decompress support")
	}
	if _, err := f.LogicalDepth([]byte("hello"), 5); err != nil {
		t.Fatalf("LogicalDepth: %v", err)
	}
}
