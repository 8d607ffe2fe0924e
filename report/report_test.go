package report

import (
	"strings"
	"testing"

	"github.com/gosimilarity/elsim/compressor"
	"github.com/gosimilarity/elsim/elsimcfg"
	"github.com/gosimilarity/elsim/filter"
	"github.com/gosimilarity/elsim/kernel"

	"github.com/gosimilarity/elsim/compare"
)

func newSession(t *testing.T) *compare.Session {
	t.Helper()
	f := compressor.New()
	k := kernel.New(f)
	flt := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()

	s, err := compare.New([]any{"hello", "goodbye"}, []any{"hello", "hello there"}, flt, k, cfg)
	if err != nil {
		t.Fatalf("compare.New: %v", err)
	}
	return s
}

func TestWriteIncludesSummaryCounts(t *testing.T) {
	s := newSession(t)
	var buf strings.Builder

	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Compression:", "IDENTICAL:", "SIMILAR:", "NEW:", "DELETED:", "SKIPPED:", "Similarity:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteWithListingsIncludesElementInfo(t *testing.T) {
	s := newSession(t)
	var buf strings.Builder

	if err := Write(&buf, s, WithListings()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected listings to mention an element's Info(), got:\n%s", out)
	}
}

func TestWriteWithoutListingsOmitsCategoryDetail(t *testing.T) {
	s := newSession(t)
	var withListings, without strings.Builder

	if err := Write(&withListings, s, WithListings()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(&without, s); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if len(without.String()) >= len(withListings.String()) {
		t.Fatal("expected the listings variant to produce strictly more output")
	}
}
