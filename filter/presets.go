package filter

import (
	"regexp"
	"strings"

	"github.com/gosimilarity/elsim/element"
	"github.com/gosimilarity/elsim/elsimcfg"
	"github.com/gosimilarity/elsim/elsimerr"
	"github.com/gosimilarity/elsim/kernel"
	"github.com/gosimilarity/elsim/method"
	"github.com/gosimilarity/elsim/signature"
)

// Methods returns the Filter preset for disassembled methods (spec
// §4.5's Methods row: "NCD of L0_4 signature"; skip rule: "length <
// 15 bytes or classname matches exclude regex"). The signature
// builder is shared across every MakeElement call so per-method
// memoization (spec §4.3) actually pays off across a whole session.
func Methods(cfg *elsimcfg.Config) (Filter, error) {
	var exclude *regexp.Regexp
	if cfg.ExcludeClassRegexp != "" {
		re, err := regexp.Compile(cfg.ExcludeClassRegexp)
		if err != nil {
			return Filter{}, elsimerr.Newf(elsimerr.InvalidInput, "filter: bad exclude regexp: %v", err)
		}
		exclude = re
	}

	builder := signature.NewBuilder()

	return Filter{
		MakeElement: func(raw any, side element.Side, k *kernel.Kernel) (element.Element, error) {
			m, ok := raw.(method.Method)
			if !ok {
				return nil, elsimerr.New(elsimerr.InvalidInput, "filter.Methods: raw element is not a method.Method")
			}
			return element.NewMethodElement(m, builder, signature.L0_4, side), nil
		},
		Skip: func(e element.Element) bool {
			me, ok := e.(*element.MethodElement)
			if !ok {
				return e.Length() < cfg.MinMethodSize
			}
			if e.Length() < cfg.MinMethodSize {
				return true
			}
			if exclude != nil && exclude.MatchString(methodClassName(me)) {
				return true
			}
			return false
		},
		Distance: func(k *kernel.Kernel, a, b element.Element) (float64, error) {
			return k.NCD(a.Signature(), b.Signature())
		},
		Rank: Rank,
	}, nil
}

// methodClassName extracts the class name out of a MethodElement's
// Info() string ("Lclass;->name(desc)"), since the exclude regexp is
// matched against the class name alone, not the whole method info.
func methodClassName(e *element.MethodElement) string {
	info := e.Info()
	if i := strings.Index(info, "->"); i >= 0 {
		return info[:i]
	}
	return info
}

// Strings returns the Filter preset for literal-string cross
// references (spec §4.5's Strings row: "NCD of buffer"; skip rule:
// "empty or whitespace-only").
func Strings(cfg *elsimcfg.Config) Filter {
	return Filter{
		MakeElement: func(raw any, side element.Side, k *kernel.Kernel) (element.Element, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, elsimerr.New(elsimerr.InvalidInput, "filter.Strings: raw element is not a string")
			}
			return element.NewStringElement(s, side), nil
		},
		Skip: func(e element.Element) bool {
			return strings.TrimSpace(string(e.Buffer())) == ""
		},
		Distance: func(k *kernel.Kernel, a, b element.Element) (float64, error) {
			return k.NCD(a.Buffer(), b.Buffer())
		},
		Rank: Rank,
	}
}

// BasicBlocks returns the Filter preset for basic blocks within one
// method (spec §4.5's Basic blocks row: "NCD of buffer"; default skip
// rule: "none").
func BasicBlocks(cfg *elsimcfg.Config) Filter {
	return Filter{
		MakeElement: func(raw any, side element.Side, k *kernel.Kernel) (element.Element, error) {
			blk, ok := raw.(method.BasicBlock)
			if !ok {
				return nil, elsimerr.New(elsimerr.InvalidInput, "filter.BasicBlocks: raw element is not a method.BasicBlock")
			}
			return element.NewBasicBlockElement(blk, "", side), nil
		},
		Skip: func(e element.Element) bool { return false },
		Distance: func(k *kernel.Kernel, a, b element.Element) (float64, error) {
			return k.NCD(a.Buffer(), b.Buffer())
		},
		Rank: Rank,
	}
}

// Text returns the Filter preset for sentences split out of a text
// document (spec §1's "two texts split into sentences" example;
// §4.5's Text row: "NCD of buffer"; skip rule: "empty or
// whitespace-only").
func Text(cfg *elsimcfg.Config) Filter {
	return Filter{
		MakeElement: func(raw any, side element.Side, k *kernel.Kernel) (element.Element, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, elsimerr.New(elsimerr.InvalidInput, "filter.Text: raw element is not a string")
			}
			return element.NewSentenceElement(s, side), nil
		},
		Skip: func(e element.Element) bool {
			return strings.TrimSpace(string(e.Buffer())) == ""
		},
		Distance: func(k *kernel.Kernel, a, b element.Element) (float64, error) {
			return k.NCD(a.Buffer(), b.Buffer())
		},
		Rank: Rank,
	}
}
