package signature

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gosimilarity/elsim/elsimerr"
	"github.com/gosimilarity/elsim/method"
)

// L0Options selects one of the four L0 sub-strategies (spec §4.3) and
// the include-prefix list used by the package-access decoration.
type L0Options struct {
	// Type selects strings_a/strings_pa and packages_a/pa_1/pa_2, per
	// the SIGNATURES table in original_source/elsim/sign.py:
	//   0: strings as "S",      fields, packages (plain, no decoration)
	//   1: strings as "S<len>", fields, packages (plain, no decoration)
	//   2: strings as "S",      fields, packages pa_1 (decorated when the class matches an include prefix)
	//   3: strings as "S",      fields, packages pa_2
	Type      int
	Arguments []string
}

// L4Options carries the include-prefix list L4 uses when rendering
// package-access codes without the B[...] framing.
type L4Options struct {
	Arguments []string
}

// Options bundles the per-level arguments a BuildSignature call
// needs; only the fields relevant to the requested levels are read.
type Options struct {
	L0 L0Options
	L4 L4Options
}

type offsetCode struct {
	offset int
	code   string
}

// Builder walks method.Method values and produces Sign objects,
// grounded on original_source/elsim/sign.py's Signature class. It
// memoises per-method results (spec §4.3: "memoises per-method
// results keyed by (method_id, grammar_spec, grammar_args)") and
// memoises the strings/fields/packages sub-signatures independently
// by method id, mirroring sign.py's `_global_cached` dict keyed by
// "SA-%s"/"FA-%s"/"PA1-%s-%s" strings.
type Builder struct {
	mu sync.Mutex

	signatures    map[string]*Sign
	stringsACache map[string][]offsetCode
	fieldsACache  map[string][]offsetCode
	packagesPA    map[string][]offsetCode
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		signatures:    make(map[string]*Sign),
		stringsACache: make(map[string][]offsetCode),
		fieldsACache:  make(map[string][]offsetCode),
		packagesPA:    make(map[string][]offsetCode),
	}
}

// BuildSignature returns the Sign for m built from the colon-free
// list of grammar levels, e.g. []string{"L0", "L1", "L2", "L3"}.
func (b *Builder) BuildSignature(m method.Method, levels []string, opts Options) (*Sign, error) {
	if len(levels) == 0 {
		return nil, elsimerr.New(elsimerr.InvalidInput, "signature: at least one grammar level is required")
	}

	key := fmt.Sprintf("%s-%s-%+v", m.ID(), strings.Join(levels, ":"), opts)

	b.mu.Lock()
	if s, ok := b.signatures[key]; ok {
		b.mu.Unlock()
		return s, nil
	}
	b.mu.Unlock()

	s := newSign()
	for _, level := range levels {
		switch level {
		case "L0":
			value, err := b.buildL0(m, opts.L0)
			if err != nil {
				return nil, err
			}
			s.add("L0", value)
		case "L1":
			s.add("L1", b.stringsA1(m))
		case "L2":
			s.add("L2", exceptions(m))
		case "L3":
			s.add("L3", fillArrayData(m))
		case "L4":
			value, err := b.packagesPlain(m, opts.L4.Arguments)
			if err != nil {
				return nil, err
			}
			s.add("L4", value)
		case "hex":
			s.add("hex", hexDump(m))
		case "sequencebb":
			s.setBlocks(sequenceBB(m, 6))
		default:
			return nil, elsimerr.Newf(elsimerr.InvalidInput, "signature: unknown grammar level %q", level)
		}
	}

	b.mu.Lock()
	b.signatures[key] = s
	b.mu.Unlock()

	return s, nil
}
