// Package filter implements the filter descriptor (spec.md §4.5,
// component C5): an immutable record of four operations parameterising
// the comparison engine for one kind of element. Modeled as a struct
// of closures, not a dictionary-keyed dispatch table, per spec §9's
// "bind at session construction; do not rely on dictionary-keyed
// lookup at runtime" design note.
package filter

import (
	"sort"

	"github.com/gosimilarity/elsim/element"
	"github.com/gosimilarity/elsim/kernel"
)

// RankCandidate is one (element, distance) pair, in the order it was
// first inserted into the similarity matrix for the element being
// ranked. Using a slice instead of a map is what makes Rank's
// insertion-order tie-break deterministic (spec §9's "Non-determinism
// to eliminate": "use an order-preserving set ... so tie-breaks in
// ranking are reproducible").
type RankCandidate struct {
	Element  element.Element
	Distance float64
}

// Filter is the struct of four pluggable operations spec §3 names.
type Filter struct {
	MakeElement func(raw any, side element.Side, k *kernel.Kernel) (element.Element, error)
	Skip        func(e element.Element) bool
	Distance    func(k *kernel.Kernel, a, b element.Element) (float64, error)
	Rank        func(candidates []RankCandidate, threshold float64) (element.Element, bool)
}

// Rank is the ranking function shared by every preset (spec §4.5):
// sort candidates ascending by distance, ties broken by insertion
// order, and return the single best iff its distance is <= threshold.
func Rank(candidates []RankCandidate, threshold float64) (element.Element, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	ordered := make([]RankCandidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Distance < ordered[j].Distance
	})

	best := ordered[0]
	if best.Distance > threshold {
		return nil, false
	}
	return best.Element, true
}
