// Package report implements the text reporter (spec.md §4.7,
// component C7): a plain-text summary of a finished comparison
// session, grounded on original_source/elsim/__init__.py's
// Elsim.show/show_element.
package report

import (
	"fmt"
	"io"

	"github.com/gosimilarity/elsim/element"
)

type options struct {
	listings bool
}

// Option configures Write.
type Option func(*options)

// WithListings prints the per-element Info() string for every
// element in every non-empty category, one per line, after the
// summary counts (spec §4.7's "optional per-category listings").
func WithListings() Option {
	return func(o *options) { o.listings = true }
}

// session is the subset of *compare.Session that Write depends on.
// Declared locally instead of importing compare directly so report
// never needs to know about compare's internal phase state, only its
// public accessors.
type session interface {
	CompressorName() string
	Identical() []element.Element
	Similar() []element.Element
	SimilarTo(element.Element) (element.Element, bool)
	Distance(element.Element, element.Element) (float64, bool)
	New() []element.Element
	Deleted() []element.Element
	Skipped() []element.Element
	Score() float64
}

// Write prints the counts, compressor name, and score (spec §4.7
// "Output"), then optional per-category listings when WithListings is
// given.
func Write(w io.Writer, s session, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if _, err := fmt.Fprintf(w, "Compression:   %s\n", s.CompressorName()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Elements:"); err != nil {
		return err
	}
	counts := []struct {
		label string
		n     int
	}{
		{"IDENTICAL", len(s.Identical())},
		{"SIMILAR", len(s.Similar())},
		{"NEW", len(s.New())},
		{"DELETED", len(s.Deleted())},
		{"SKIPPED", len(s.Skipped())},
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "    %-9s %d\n", c.label+":", c.n); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Similarity:    %3.4f%%\n", s.Score()); err != nil {
		return err
	}

	if !o.listings {
		return nil
	}
	return writeListings(w, s)
}

func writeListings(w io.Writer, s session) error {
	if err := writeCategory(w, "Identical", s.Identical(), func(e element.Element) string {
		return e.Info()
	}); err != nil {
		return err
	}
	if err := writeCategory(w, "Similar", s.Similar(), func(e element.Element) string {
		winner, ok := s.SimilarTo(e)
		if !ok {
			return e.Info()
		}
		d, _ := s.Distance(e, winner)
		return fmt.Sprintf("%s --> %s (%.4f)", e.Info(), winner.Info(), d)
	}); err != nil {
		return err
	}
	if err := writeCategory(w, "New", s.New(), func(e element.Element) string { return e.Info() }); err != nil {
		return err
	}
	if err := writeCategory(w, "Deleted", s.Deleted(), func(e element.Element) string { return e.Info() }); err != nil {
		return err
	}
	return writeCategory(w, "Skipped", s.Skipped(), func(e element.Element) string { return e.Info() })
}

func writeCategory(w io.Writer, title string, elems []element.Element, line func(element.Element) string) error {
	if len(elems) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s (%d):\n", title, len(elems)); err != nil {
		return err
	}
	for _, e := range elems {
		if _, err := fmt.Fprintf(w, "\t%s\n", line(e)); err != nil {
			return err
		}
	}
	return nil
}
