package compare

import (
	"sync"

	"github.com/gosimilarity/elsim/element"
	"github.com/gosimilarity/elsim/filter"
	"github.com/gosimilarity/elsim/kernel"
)

// indexSide implements Phase A for one side: build e, skip or index
// it, in raw-item iteration order (spec §4.6 Phase A).
func (s *Session) indexSide(idx int, raw []any, side element.Side) error {
	for _, item := range raw {
		e, err := s.filter.MakeElement(item, side, s.kernel)
		if err != nil {
			return err
		}
		if s.filter.Skip(e) {
			s.skipped = append(s.skipped, e)
			continue
		}

		s.elements[idx] = append(s.elements[idx], e)

		h := e.Hash()
		if !s.hashes[idx][h] {
			s.hashes[idx][h] = true
			s.hashesOrder[idx] = append(s.hashesOrder[idx], h)
		}
		s.hashToElements[idx][h] = append(s.hashToElements[idx][h], e)
	}
	return nil
}

// partitionIdentical implements Phase B: split hashes into the
// intersection I and residues R1/R2, move every side-1 element whose
// hash is in I into `identical`, and build cand2, one representative
// element per residual hash on side 2, in first-seen order. The
// resulting cand2 order is also what Phase C/D use as the
// insertion-order tie-break for ranking, since every residual side-1
// element is compared against cand2 in this same fixed order.
func (s *Session) partitionIdentical() []element.Element {
	for _, h := range s.hashesOrder[0] {
		if s.hashes[1][h] {
			s.identical = append(s.identical, s.hashToElements[0][h]...)
		}
	}

	var cand2 []element.Element
	for _, h := range s.hashesOrder[1] {
		if s.hashes[0][h] {
			continue // in the intersection: identical, not residual
		}
		bucket := s.hashToElements[1][h]
		if len(bucket) > 0 {
			cand2 = append(cand2, bucket[0])
		}
	}
	s.cand2 = cand2
	return cand2
}

// residueRepresentatives returns one representative element per
// residual hash on the given side (idx 0 is used by Phase C; the
// hash must not be in the other side's hash set).
func (s *Session) residueRepresentatives(idx int) []element.Element {
	other := 1 - idx
	var reps []element.Element
	for _, h := range s.hashesOrder[idx] {
		if s.hashes[other][h] {
			continue
		}
		bucket := s.hashToElements[idx][h]
		if len(bucket) > 0 {
			reps = append(reps, bucket[0])
		}
	}
	return reps
}

// fillSimMatrix implements Phase C: for every residual representative
// on side 1, compute the distance to every cand2 candidate. Cells are
// independent (spec §5), so concurrency > 1 fans the outer loop out
// across a bounded worker pool; each worker holds its own cloned
// kernel so the façade's mutable level/type is never shared, grounded
// on the bounded-concurrency shape of the teacher's
// middleware/concurrency.go Semaphore (adapted here from a per-key
// request limiter into a fixed worker pool over independent matrix
// rows, since this engine has no request concept of its own).
func (s *Session) fillSimMatrix(residue1 []element.Element, concurrency int) error {
	for _, e := range residue1 {
		s.simMatrix[e] = make(map[element.Element]float64, len(s.cand2))
		s.similar = append(s.similar, e)
	}

	if concurrency <= 1 || len(residue1) <= 1 {
		for _, e := range residue1 {
			if err := s.fillRow(s.kernel, e); err != nil {
				return err
			}
		}
		return nil
	}

	if concurrency > len(residue1) {
		concurrency = len(residue1)
	}

	jobs := make(chan element.Element)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < concurrency; w++ {
		workerKernel := s.kernel.Clone()
		wg.Add(1)
		go func(k *kernel.Kernel) {
			defer wg.Done()
			for e := range jobs {
				if err := s.fillRow(k, e); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}(workerKernel)
	}

	for _, e := range residue1 {
		jobs <- e
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

// fillRow computes the distance from e to every cand2 candidate using
// the given kernel (the session's own, or a per-worker clone), and
// writes the results into e's pre-allocated simMatrix row. Safe for
// concurrent use across distinct e values: each goroutine only ever
// touches the inner map belonging to its own e.
func (s *Session) fillRow(k *kernel.Kernel, e element.Element) error {
	row := s.simMatrix[e]
	for _, c := range s.cand2 {
		d, err := s.filter.Distance(k, e, c)
		if err != nil {
			return err
		}
		row[c] = d
	}
	return nil
}

// rankSimilar implements Phase D: rank each similar element's
// candidates (in cand2's fixed order, spec §4.5's tie-break rule) and
// either assign a winner or demote the element to deleted.
func (s *Session) rankSimilar() {
	var survivors []element.Element
	for _, e := range s.similar {
		row := s.simMatrix[e]
		candidates := make([]filter.RankCandidate, 0, len(row))
		for _, c := range s.cand2 {
			if d, ok := row[c]; ok {
				candidates = append(candidates, filter.RankCandidate{Element: c, Distance: d})
			}
		}

		w, ok := s.filter.Rank(candidates, s.cfg.SortThreshold)
		if !ok {
			s.deletedElements = append(s.deletedElements, e)
			continue
		}
		s.similarTo[e] = w
		survivors = append(survivors, e)
	}
	s.similar = survivors
}

// findNew implements Phase E: every side-2 element that neither
// matched nor is identical is new.
func (s *Session) findNew() {
	matched := make(map[element.Element]bool, len(s.similarTo))
	for _, w := range s.similarTo {
		matched[w] = true
	}

	for _, e := range s.elements[1] {
		if matched[e] {
			continue
		}
		if s.hashes[0][e.Hash()] {
			continue
		}
		s.newElements = append(s.newElements, e)
	}
}
