package compare

import (
	"testing"

	"github.com/gosimilarity/elsim/compressor"
	"github.com/gosimilarity/elsim/element"
	"github.com/gosimilarity/elsim/elsimcfg"
	"github.com/gosimilarity/elsim/filter"
	"github.com/gosimilarity/elsim/kernel"
)

func newTestKernel() *kernel.Kernel {
	f := compressor.New()
	return kernel.New(f)
}

func TestSelfComparisonIsAllIdentical(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()

	side := []any{"hello", "world"}
	s, err := New(side, side, f, k, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(s.Identical()) != 2 {
		t.Fatalf("Identical() = %d elements, want 2", len(s.Identical()))
	}
	if len(s.Similar()) != 0 || len(s.New()) != 0 || len(s.Deleted()) != 0 {
		t.Fatalf("expected no similar/new/deleted, got similar=%d new=%d deleted=%d",
			len(s.Similar()), len(s.New()), len(s.Deleted()))
	}
	if got := s.Score(); got != 100 {
		t.Fatalf("Score() = %v, want 100", got)
	}
}

func TestDisjointCollectionsYieldNewAndDeleted(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()
	// SortThreshold 0 forces every residual pairing to be rejected as
	// too dissimilar, so every side-1 residue becomes deleted and
	// every side-2 residue becomes new.
	cfg.SortThreshold = 0

	s, err := New([]any{"aaaaaaaaaaaaaaaaaaaa"}, []any{"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"}, f, k, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(s.Identical()) != 0 {
		t.Fatalf("expected no identical elements, got %d", len(s.Identical()))
	}
	if len(s.Deleted()) != 1 {
		t.Fatalf("Deleted() = %d, want 1", len(s.Deleted()))
	}
	if len(s.New()) != 1 {
		t.Fatalf("New() = %d, want 1", len(s.New()))
	}
}

func TestSkippedElementsAreExcludedFromEveryPartition(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()

	s, err := New([]any{"", "   ", "real"}, []any{"real"}, f, k, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(s.Skipped()) != 2 {
		t.Fatalf("Skipped() = %d, want 2 (the blank and whitespace-only strings)", len(s.Skipped()))
	}
	for _, skipped := range s.Skipped() {
		for _, e := range s.Identical() {
			if skipped == e {
				t.Fatal("a skipped element leaked into Identical()")
			}
		}
	}
	if len(s.Identical()) != 1 {
		t.Fatalf("Identical() = %d, want 1 (\"real\")", len(s.Identical()))
	}
}

func TestPartitionsAreDisjoint(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()

	s, err := New(
		[]any{"alpha one two", "bravo three four", "charlie five six"},
		[]any{"alpha one two", "bravo xxxx yyyy", "delta seven eight"},
		f, k, cfg,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make(map[element.Element]string)
	buckets := map[string][]element.Element{
		"identical": s.Identical(),
		"similar":   s.Similar(),
		"deleted":   s.Deleted(),
	}
	for name, bucket := range buckets {
		for _, e := range bucket {
			if other, ok := seen[e]; ok {
				t.Fatalf("element present in both %q and %q", other, name)
			}
			seen[e] = name
		}
	}
}

func TestMissingFilterOperationIsRejected(t *testing.T) {
	k := newTestKernel()
	cfg := elsimcfg.Default()

	_, err := New([]any{"a"}, []any{"b"}, filter.Filter{}, k, cfg)
	if err == nil {
		t.Fatal("expected an error for a filter missing its operations")
	}
}

func TestNilConfigIsRejected(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())

	_, err := New([]any{"a"}, []any{"b"}, f, k, nil)
	if err == nil {
		t.Fatal("expected an error for a nil config")
	}
}

func TestScoreIsZeroForEmptySides(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()

	s, err := New(nil, nil, f, k, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.Score(); got != 0 {
		t.Fatalf("Score() = %v, want 0 for two empty collections", got)
	}
}

func TestClampForcesFullDissimilarityAboveThreshold(t *testing.T) {
	// A similar pair whose NCD lands at or above SimClamp must score
	// as if fully dissimilar (spec §4.6's clamp formula), even though
	// it still passed the looser SortThreshold ranking cutoff.
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()
	cfg.SortThreshold = 1.0 // accept any ranked candidate
	cfg.SimClamp = 0.0      // clamp every value, zero included, to 1.0

	s, err := New([]any{"completely different content one"}, []any{"something else entirely two"}, f, k, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.Similar()) != 1 {
		t.Fatalf("Similar() = %d, want 1", len(s.Similar()))
	}
	if got := s.Score(); got != 0 {
		t.Fatalf("Score() = %v, want 0 (clamp should force the single similar pair to full dissimilarity)", got)
	}
}

func TestWithConcurrencyMatchesSynchronousResult(t *testing.T) {
	k := newTestKernel()
	f := filter.Strings(elsimcfg.Default())
	cfg := elsimcfg.Default()

	side1 := []any{"one fish two fish", "red fish blue fish", "green eggs and ham"}
	side2 := []any{"one fish two fish", "purple fish orange fish", "sam i am"}

	serial, err := New(side1, side2, f, k, cfg)
	if err != nil {
		t.Fatalf("New (serial): %v", err)
	}
	parallel, err := New(side1, side2, f, k, cfg, WithConcurrency(4))
	if err != nil {
		t.Fatalf("New (parallel): %v", err)
	}

	if serial.Score() != parallel.Score() {
		t.Fatalf("serial score %v != parallel score %v", serial.Score(), parallel.Score())
	}
	if len(serial.Identical()) != len(parallel.Identical()) {
		t.Fatal("identical counts differ between serial and parallel runs")
	}
	if len(serial.New()) != len(parallel.New()) {
		t.Fatal("new counts differ between serial and parallel runs")
	}
}
