package signature

import (
	"github.com/gosimilarity/elsim/elsimerr"
	"github.com/gosimilarity/elsim/method"
)

// Predefined names one of the shortcut signature presets from
// original_source/elsim/sign.py's SIGNATURES table (SUPPLEMENT: the
// distilled spec only describes the L0 sub-strategies generically as
// "type ∈ {0,1,2,3}"; this restores the seven named L0 presets plus
// sequencebb and hex, since callers porting from the original address
// them by these names).
type Predefined int

const (
	L0_0 Predefined = iota
	L0_1
	L0_2
	L0_3
	L0_4
	L0_5
	L0_6
	SequenceBB
	Hex
)

func (p Predefined) String() string {
	switch p {
	case L0_0:
		return "L0_0"
	case L0_1:
		return "L0_1"
	case L0_2:
		return "L0_2"
	case L0_3:
		return "L0_3"
	case L0_4:
		return "L0_4"
	case L0_5:
		return "L0_5"
	case L0_6:
		return "L0_6"
	case SequenceBB:
		return "sequencebb"
	case Hex:
		return "hex"
	default:
		return "unknown"
	}
}

func l0OptionsFor(p Predefined) (L0Options, bool) {
	switch p {
	case L0_0:
		return L0Options{Type: 0}, true
	case L0_1:
		return L0Options{Type: 1}, true
	case L0_2:
		return L0Options{Type: 2, Arguments: []string{"Landroid"}}, true
	case L0_3:
		return L0Options{Type: 2, Arguments: []string{"Ljava"}}, true
	case L0_4:
		return L0Options{Type: 2, Arguments: []string{"Landroid", "Ljava"}}, true
	case L0_5:
		return L0Options{Type: 3, Arguments: []string{"Landroid"}}, true
	case L0_6:
		return L0Options{Type: 3, Arguments: []string{"Ljava"}}, true
	default:
		return L0Options{}, false
	}
}

// Predefined builds the Sign for one of the named presets, mirroring
// get_method_signature(method, predef_sign=...) in the original.
func (b *Builder) Predefined(m method.Method, p Predefined) (*Sign, error) {
	switch p {
	case SequenceBB:
		return b.BuildSignature(m, []string{"sequencebb"}, Options{})
	case Hex:
		return b.BuildSignature(m, []string{"hex"}, Options{})
	default:
		opts, ok := l0OptionsFor(p)
		if !ok {
			return nil, elsimerr.Newf(elsimerr.InvalidInput, "signature: unknown predefined signature %v", p)
		}
		return b.BuildSignature(m, []string{"L0"}, Options{L0: opts})
	}
}
