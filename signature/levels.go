package signature

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/gosimilarity/elsim/method"
)

// terminatorCode derives the L0 terminator class from the last
// instruction's numeric opcode, per spec §4.3:
//
//	R: return                0x0E..0x11
//	I: conditional branch    0x32..0x3D
//	G: goto or switch        0x28..0x2A, 0x2B..0x2C
func terminatorCode(last method.Instruction) (string, bool) {
	op := last.Opcode()
	switch {
	case op >= 0x0E && op <= 0x11:
		return "R", true
	case op >= 0x32 && op <= 0x3D:
		return "I", true
	case op >= 0x28 && op <= 0x2A:
		return "G", true
	case op >= 0x2B && op <= 0x2C:
		return "G", true
	default:
		return "", false
	}
}

func sortOffsetCodes(codes []offsetCode) {
	sort.SliceStable(codes, func(i, j int) bool {
		if codes[i].offset != codes[j].offset {
			return codes[i].offset < codes[j].offset
		}
		return codes[i].code < codes[j].code
	})
}

// buildL0 implements the "B[...]" per-basic-block payload (spec §4.3,
// grounded on sign.py's Signature._get_bb). It computes the chosen
// sub-strategy's offset/code pairs once for the whole method, then
// slices them per block by offset range — equivalent to the
// original's per-block recomputation but without the redundant work.
func (b *Builder) buildL0(m method.Method, opts L0Options) (string, error) {
	var codes []offsetCode

	switch opts.Type {
	case 0:
		codes = append(codes, b.stringsA(m)...)
		codes = append(codes, b.fieldsA(m)...)
		codes = append(codes, packagesA(m)...)
	case 1:
		codes = append(codes, stringsPA(m)...)
		codes = append(codes, b.fieldsA(m)...)
		codes = append(codes, packagesA(m)...)
	case 2:
		codes = append(codes, b.stringsA(m)...)
		codes = append(codes, b.fieldsA(m)...)
		pkgs, err := b.packagesPA1(m, opts.Arguments)
		if err != nil {
			return "", err
		}
		codes = append(codes, pkgs...)
	case 3:
		codes = append(codes, b.stringsA(m)...)
		codes = append(codes, b.fieldsA(m)...)
		codes = append(codes, packagesPA2(m, opts.Arguments)...)
	default:
		codes = append(codes, b.stringsA(m)...)
		codes = append(codes, b.fieldsA(m)...)
		codes = append(codes, packagesA(m)...)
	}

	var out strings.Builder
	for _, blk := range m.BasicBlocks() {
		instrs := blk.Instructions()
		if len(instrs) == 0 {
			continue
		}
		start := instrs[0].Offset()
		last := instrs[len(instrs)-1]
		end := last.Offset() + last.Length()

		var internal []offsetCode
		if code, ok := terminatorCode(last); ok {
			internal = append(internal, offsetCode{offset: end - 1, code: code})
		}
		for _, c := range codes {
			if c.offset >= start && c.offset < end {
				internal = append(internal, c)
			}
		}
		sortOffsetCodes(internal)

		out.WriteString("B[")
		for _, c := range internal {
			out.WriteString(c.code)
		}
		out.WriteString("]")
	}

	return out.String(), nil
}

// stringsA returns one (offset, "S") pair per string-literal use
// site, memoised per method id ("SA-%s" in the original).
func (b *Builder) stringsA(m method.Method) []offsetCode {
	b.mu.Lock()
	if cached, ok := b.stringsACache[m.ID()]; ok {
		b.mu.Unlock()
		return cached
	}
	b.mu.Unlock()

	var out []offsetCode
	for _, ref := range m.Strings() {
		out = append(out, offsetCode{offset: ref.Offset(), code: "S"})
	}

	b.mu.Lock()
	b.stringsACache[m.ID()] = out
	b.mu.Unlock()
	return out
}

// stringsPA returns (offset, "S<len>") pairs, not memoised in the
// original (only the plain "S" variant is).
func stringsPA(m method.Method) []offsetCode {
	var out []offsetCode
	for _, ref := range m.Strings() {
		out = append(out, offsetCode{offset: ref.Offset(), code: fmt.Sprintf("S%d", len(ref.Value()))})
	}
	return out
}

// fieldsA returns one (offset, "F0"/"F1") pair per field access,
// memoised per method id ("FA-%s" in the original).
func (b *Builder) fieldsA(m method.Method) []offsetCode {
	b.mu.Lock()
	if cached, ok := b.fieldsACache[m.ID()]; ok {
		b.mu.Unlock()
		return cached
	}
	b.mu.Unlock()

	var out []offsetCode
	for _, ref := range m.Fields() {
		code := "F0"
		if ref.Write() {
			code = "F1"
		}
		out = append(out, offsetCode{offset: ref.Offset(), code: code})
	}

	b.mu.Lock()
	b.fieldsACache[m.ID()] = out
	b.mu.Unlock()
	return out
}

// packagesA returns plain (offset, "P0"/"P1") pairs with no name
// decoration and no downgrade to the internal-call class 2; not
// memoised in the original.
func packagesA(m method.Method) []offsetCode {
	var out []offsetCode
	for _, ref := range m.Packages() {
		code := "P1"
		if ref.Create() {
			code = "P0"
		}
		out = append(out, offsetCode{offset: ref.Offset(), code: code})
	}
	return out
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// packagesPA1 implements sign.py's _get_packages_pa_1: calls to
// methods defined inside the same binary are downgraded to access
// class 2 and never named; external calls/creates matching the
// include-prefix list are decorated with class·name·descriptor.
// Memoised by (method id, include list), "PA1-%s-%s" in the original.
func (b *Builder) packagesPA1(m method.Method, include []string) ([]offsetCode, error) {
	cacheKey := fmt.Sprintf("%s-%v", m.ID(), include)

	b.mu.Lock()
	if cached, ok := b.packagesPA[cacheKey]; ok {
		b.mu.Unlock()
		return cached, nil
	}
	b.mu.Unlock()

	var out []offsetCode
	for _, ref := range m.Packages() {
		present := hasAnyPrefix(ref.ClassName(), include)

		if !ref.Create() {
			if !ref.External() {
				out = append(out, offsetCode{offset: ref.Offset(), code: "P2"})
				continue
			}
			if present {
				out = append(out, offsetCode{offset: ref.Offset(), code: fmt.Sprintf("P1{%s%s%s}", ref.ClassName(), ref.MethodName(), ref.Descriptor())})
			} else {
				out = append(out, offsetCode{offset: ref.Offset(), code: "P1"})
			}
			continue
		}

		if present {
			out = append(out, offsetCode{offset: ref.Offset(), code: fmt.Sprintf("P0{%s}", ref.ClassName())})
		} else {
			out = append(out, offsetCode{offset: ref.Offset(), code: "P0"})
		}
	}

	b.mu.Lock()
	b.packagesPA[cacheKey] = out
	b.mu.Unlock()
	return out, nil
}

// packagesPA2 implements sign.py's _get_packages_pa_2: include-listed
// targets are shown as the bare access code; everything else is
// decorated with the class name (creates) or class·name·descriptor
// (calls). Not memoised in the original.
func packagesPA2(m method.Method, include []string) []offsetCode {
	var out []offsetCode
	for _, ref := range m.Packages() {
		present := hasAnyPrefix(ref.ClassName(), include)
		access := "P1"
		if ref.Create() {
			access = "P0"
		}

		if present {
			out = append(out, offsetCode{offset: ref.Offset(), code: access})
			continue
		}

		if !ref.Create() {
			out = append(out, offsetCode{offset: ref.Offset(), code: fmt.Sprintf("P1{%s%s%s}", ref.ClassName(), ref.MethodName(), ref.Descriptor())})
		} else {
			out = append(out, offsetCode{offset: ref.Offset(), code: fmt.Sprintf("P0{%s}", ref.ClassName())})
		}
	}
	return out
}

// packagesPlain implements L4: the package-access codes from pa_1,
// concatenated without offsets or "B[...]" framing (spec §4.3: "same
// as the P* sub-strategy of L0, without B[...] framing").
func (b *Builder) packagesPlain(m method.Method, include []string) (string, error) {
	codes, err := b.packagesPA1(m, include)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, c := range codes {
		out.WriteString(c.code)
	}
	return out.String(), nil
}

// stringsA1 implements L1: every string literal used by the method,
// concatenated, with newlines flattened to spaces.
func (b *Builder) stringsA1(m method.Method) string {
	var out strings.Builder
	for _, ref := range m.Strings() {
		out.WriteString(strings.ReplaceAll(ref.Value(), "\n", " "))
	}
	return out.String()
}

// exceptions implements L2: the class names of every exception
// handler, concatenated.
func exceptions(m method.Method) string {
	var out strings.Builder
	for _, h := range m.ExceptionHandlers() {
		out.WriteString(h.ClassName())
	}
	return out.String()
}

// fillArrayData implements L3: a hex dump of every
// fill-array-data-payload instruction's canonicalised operand text.
func fillArrayData(m method.Method) string {
	var out strings.Builder
	for _, instr := range m.Instructions() {
		if instr.Name() == "fill-array-data-payload" {
			out.WriteString(hex.EncodeToString([]byte(instr.Operand())))
		}
	}
	return out.String()
}

// hexDump implements the "hex" level: every instruction's canonical
// name plus canonicalised operand text, concatenated without
// separators.
func hexDump(m method.Method) string {
	var out strings.Builder
	for _, instr := range m.Instructions() {
		out.WriteString(instr.Name())
		out.WriteString(instr.Operand())
	}
	return out.String()
}

// sequenceBB implements "sequencebb": the opcode-name strings of
// every basic block with at least minInstructions instructions
// (spec §4.3 / §9 decides the boundary is inclusive, >= 6).
func sequenceBB(m method.Method, minInstructions int) []string {
	var out []string
	for _, blk := range m.BasicBlocks() {
		instrs := blk.Instructions()
		if len(instrs) < minInstructions {
			continue
		}
		var names strings.Builder
		for _, instr := range instrs {
			names.WriteString(instr.Name())
		}
		out = append(out, names.String())
	}
	return out
}
