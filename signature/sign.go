// Package signature implements the Cesare–Xiang-style per-method
// signature grammar (spec.md §4.3, component C3): walking a method's
// instructions and cross-references to emit canonical byte strings
// at several abstraction levels (L0-L4, hex, sequencebb).
package signature

import "strings"

// Sign is the signature for a single method: an ordered mapping from
// level name to byte string, grounded on original_source/elsim/sign.py's
// Sign class (an OrderedDict plus get_string/get_list).
type Sign struct {
	order  []string
	values map[string]string
	blocks []string // set only when the "sequencebb" level was requested
}

func newSign() *Sign {
	return &Sign{values: make(map[string]string)}
}

func (s *Sign) add(level, value string) {
	if _, ok := s.values[level]; !ok {
		s.order = append(s.order, level)
	}
	s.values[level] = value
}

func (s *Sign) setBlocks(blocks []string) {
	s.blocks = blocks
}

// Level returns the raw string emitted for one grammar level, and
// whether that level was present in this signature at all.
func (s *Sign) Level(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// GetString concatenates every level's value in insertion order,
// mirroring Sign.get_string() in the original.
func (s *Sign) GetString() string {
	var b strings.Builder
	for _, level := range s.order {
		b.WriteString(s.values[level])
	}
	return b.String()
}

// GetList returns the sequencebb level's per-block opcode strings,
// mirroring Sign.get_list().
func (s *Sign) GetList() []string {
	return s.blocks
}
