package kernel

import (
	"bytes"
	"testing"

	"github.com/gosimilarity/elsim/compressor"
)

func newTestKernel() *Kernel {
	f := compressor.New()
	f.SetType(compressor.ZLIB)
	return New(f)
}

func TestNCDEmptyInputReturnsOne(t *testing.T) {
	k := newTestKernel()

	d, err := k.NCD(nil, []byte("hello"))
	if err != nil {
		t.Fatalf("NCD: %v", err)
	}
	if d != 1.0 {
		t.Fatalf("NCD(nil, hello) = %v, want 1.0", d)
	}
}

func TestNCDBounds(t *testing.T) {
	k := newTestKernel()
	samples := [][2][]byte{
		{[]byte("the quick brown fox"), []byte("the quick brown fox jumps")},
		{[]byte("abcdefgh"), []byte("zyxwvuts")},
		{bytes.Repeat([]byte("a"), 500), bytes.Repeat([]byte("a"), 500)},
	}
	for _, pair := range samples {
		d, err := k.NCD(pair[0], pair[1])
		if err != nil {
			t.Fatalf("NCD: %v", err)
		}
		if d < 0 || d > 1 {
			t.Fatalf("NCD(%q, %q) = %v out of [0,1]", pair[0], pair[1], d)
		}
	}
}

func TestNCDSelfIsSmall(t *testing.T) {
	k := newTestKernel()
	data := bytes.Repeat([]byte("structural similarity engine "), 30)

	d, err := k.NCD(data, data)
	if err != nil {
		t.Fatalf("NCD: %v", err)
	}
	if d > 0.2 {
		t.Fatalf("NCD(x, x) = %v, want <= 0.2 for ZLIB", d)
	}
}

func TestNCSIsOneMinusNCD(t *testing.T) {
	k := newTestKernel()
	x, y := []byte("hello world"), []byte("hello there")

	d, err := k.NCD(x, y)
	if err != nil {
		t.Fatalf("NCD: %v", err)
	}
	s, err := k.NCS(x, y)
	if err != nil {
		t.Fatalf("NCS: %v", err)
	}
	if s != 1.0-d {
		t.Fatalf("NCS = %v, want %v", s, 1.0-d)
	}
}

func TestKolmogorovMatchesCompress(t *testing.T) {
	k := newTestKernel()
	data := []byte("repeated data repeated data repeated data")

	kc, err := k.Kolmogorov(data)
	if err != nil {
		t.Fatalf("Kolmogorov: %v", err)
	}
	n, err := k.facade.Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if kc != n {
		t.Fatalf("Kolmogorov = %d, want %d", kc, n)
	}
}

func TestCacheDoesNotChangeResult(t *testing.T) {
	k := newTestKernel()
	x, y := []byte("alpha beta gamma delta"), []byte("alpha beta gamma epsilon")

	first, err := k.NCD(x, y)
	if err != nil {
		t.Fatalf("NCD first: %v", err)
	}
	second, err := k.NCD(x, y)
	if err != nil {
		t.Fatalf("NCD second (cached): %v", err)
	}
	if first != second {
		t.Fatalf("cached NCD diverged: %v != %v", first, second)
	}
}

func TestCacheInvalidatesOnLevelChange(t *testing.T) {
	k := newTestKernel()
	data := bytes.Repeat([]byte("payload "), 100)

	k.facade.SetLevel(1)
	lowDepth, err := k.Kolmogorov(data)
	if err != nil {
		t.Fatalf("Kolmogorov level 1: %v", err)
	}

	k.facade.SetLevel(9)
	highDepth, err := k.Kolmogorov(data)
	if err != nil {
		t.Fatalf("Kolmogorov level 9: %v", err)
	}

	if highDepth > lowDepth {
		t.Fatalf("level 9 length %d should not exceed level 1 length %d", highDepth, lowDepth)
	}

	want, err := k.facade.Compress(data)
	if err != nil {
		t.Fatalf("Compress level 9: %v", err)
	}
	if highDepth != want {
		t.Fatalf("Kolmogorov at level 9 = %d, want %d (stale level-1 cache entry returned)", highDepth, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	k := newTestKernel()
	k.facade.SetType(compressor.XZ)

	clone := k.Clone()
	k.facade.SetType(compressor.SNAPPY)

	if clone.facade.Type() != compressor.XZ {
		t.Fatalf("clone facade type = %v, want XZ", clone.facade.Type())
	}
}

func TestCMIDIsBoundedAndAdvisory(t *testing.T) {
	k := newTestKernel()
	x, y := []byte("some method body bytes"), []byte("some other method body bytes")

	v, err := k.CMID(x, y)
	if err != nil {
		t.Fatalf("CMID: %v", err)
	}
	if v < 0 || v > 1 {
		t.Fatalf("CMID = %v out of [0,1]", v)
	}
}
