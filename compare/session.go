// Package compare implements the comparison engine (spec.md §4.6,
// component C6): the set-partitioning algorithm that classifies two
// collections of elements into identical/similar/new/deleted/skipped
// and computes the aggregate similarity score.
package compare

import (
	"github.com/gosimilarity/elsim/element"
	"github.com/gosimilarity/elsim/elsimcfg"
	"github.com/gosimilarity/elsim/elsimerr"
	"github.com/gosimilarity/elsim/filter"
	"github.com/gosimilarity/elsim/kernel"
)

// Session owns exactly the state spec §3's "Similarity session"
// names. All fields are built in New's deterministic phases and
// are read-only afterwards (spec §3's "Lifecycle").
type Session struct {
	filter filter.Filter
	kernel *kernel.Kernel
	cfg    *elsimcfg.Config

	elements       [2][]element.Element
	hashesOrder    [2][][16]byte
	hashes         [2]map[[16]byte]bool
	hashToElements [2]map[[16]byte][]element.Element

	identical []element.Element
	similar   []element.Element
	similarTo map[element.Element]element.Element
	simMatrix map[element.Element]map[element.Element]float64
	cand2     []element.Element

	newElements     []element.Element
	deletedElements []element.Element
	skipped         []element.Element

	compressorName string
}

type sessionOptions struct {
	concurrency int
}

// Option configures Session construction.
type Option func(*sessionOptions)

// WithConcurrency parallelizes Phase C (the similarity-matrix fill)
// across n workers, each with its own cloned kernel/facade (spec §5:
// "the compressor façade must be cloned per worker"). n <= 1 runs
// Phase C synchronously, which is the default.
func WithConcurrency(n int) Option {
	return func(o *sessionOptions) {
		o.concurrency = n
	}
}

// New runs the deterministic phases of spec §4.6 (index,
// identical/residue, similarity matrix, ranking, new) synchronously
// and returns the resulting read-only Session.
func New(side1, side2 []any, f filter.Filter, k *kernel.Kernel, cfg *elsimcfg.Config, opts ...Option) (*Session, error) {
	if f.MakeElement == nil || f.Skip == nil || f.Distance == nil || f.Rank == nil {
		return nil, elsimerr.New(elsimerr.InvalidInput, "compare: filter is missing one or more operations")
	}
	if cfg == nil {
		return nil, elsimerr.New(elsimerr.InvalidInput, "compare: config is required")
	}

	so := &sessionOptions{concurrency: 1}
	for _, opt := range opts {
		opt(so)
	}

	s := &Session{
		filter:         f,
		kernel:         k,
		cfg:            cfg,
		similarTo:      make(map[element.Element]element.Element),
		simMatrix:      make(map[element.Element]map[element.Element]float64),
		compressorName: k.Facade().Type().String(),
	}
	s.hashes[0] = make(map[[16]byte]bool)
	s.hashes[1] = make(map[[16]byte]bool)
	s.hashToElements[0] = make(map[[16]byte][]element.Element)
	s.hashToElements[1] = make(map[[16]byte][]element.Element)

	// Phase A — indexing.
	if err := s.indexSide(0, side1, element.Side1); err != nil {
		return nil, err
	}
	if err := s.indexSide(1, side2, element.Side2); err != nil {
		return nil, err
	}

	// Phase B — identical / residue.
	s.partitionIdentical()

	// Phase C — similarity matrix.
	residue1 := s.residueRepresentatives(0)
	if err := s.fillSimMatrix(residue1, so.concurrency); err != nil {
		return nil, err
	}

	// Phase D — ranking.
	s.rankSimilar()

	// Phase E — new.
	s.findNew()

	return s, nil
}

// Identical returns the identical-set elements (drawn from side 1).
func (s *Session) Identical() []element.Element { return s.identical }

// Similar returns the elements that matched a candidate within
// threshold (drawn from side 1).
func (s *Session) Similar() []element.Element { return s.similar }

// SimilarTo returns the winning side-2 element a similar side-1
// element matched to, if any.
func (s *Session) SimilarTo(e element.Element) (element.Element, bool) {
	w, ok := s.similarTo[e]
	return w, ok
}

// Distance returns the recorded similarity-matrix distance between a
// residual side-1 element and a side-2 candidate, if computed.
func (s *Session) Distance(e, candidate element.Element) (float64, bool) {
	row, ok := s.simMatrix[e]
	if !ok {
		return 0, false
	}
	d, ok := row[candidate]
	return d, ok
}

// New returns the new_elements set (drawn from side 2).
func (s *Session) New() []element.Element { return s.newElements }

// Deleted returns the deleted set (drawn from side 1).
func (s *Session) Deleted() []element.Element { return s.deletedElements }

// Skipped returns every element (from either side) that the filter's
// Skip predicate rejected.
func (s *Session) Skipped() []element.Element { return s.skipped }

// Elements returns the skip-survivors for one side (0 or 1).
func (s *Session) Elements(side int) []element.Element { return s.elements[side] }

// CompressorName is the name of the codec used to build this
// session, for the reporter.
func (s *Session) CompressorName() string { return s.compressorName }
