package element

import (
	"strings"

	"github.com/gosimilarity/elsim/compressor"
	"github.com/gosimilarity/elsim/method"
	"github.com/gosimilarity/elsim/signature"
)

// MethodElement wraps one disassembled method (spec §4.4: "For method
// elements the buffer is the concatenation of instruction mnemonic
// codes + canonicalised operands, and the signature is the output of
// C3 at a caller-chosen level").
type MethodElement struct {
	base
	m       method.Method
	builder *signature.Builder
	level   signature.Predefined
}

// NewMethodElement builds the buffer eagerly (it is cheap, a single
// pass over the method's instructions) but defers the signature to
// first access.
func NewMethodElement(m method.Method, builder *signature.Builder, level signature.Predefined, side Side) *MethodElement {
	e := &MethodElement{m: m, builder: builder, level: level}
	e.base.side = side
	e.base.initHash(methodBuffer(m))
	return e
}

func methodBuffer(m method.Method) []byte {
	var b strings.Builder
	for _, instr := range m.Instructions() {
		b.WriteString(instr.Name())
		b.WriteString(instr.Operand())
	}
	return []byte(b.String())
}

func (e *MethodElement) Signature() []byte {
	sig, _, _ := e.signature(e.computeSignature)
	return sig
}

func (e *MethodElement) Entropy() float64 {
	_, ent, _ := e.signature(e.computeSignature)
	return ent
}

func (e *MethodElement) computeSignature() ([]byte, float64, error) {
	s, err := e.builder.Predefined(e.m, e.level)
	if err != nil {
		return nil, 0, err
	}
	sig := []byte(s.GetString())
	return sig, compressor.Entropy(sig), nil
}

func (e *MethodElement) Info() string {
	return e.m.ClassName() + "->" + e.m.Name() + e.m.Descriptor()
}

// Length is the method's code size in bytes (method.Method.CodeSize),
// the metric the Methods preset's size-based skip rule compares.
func (e *MethodElement) Length() int { return e.m.CodeSize() }

// BasicBlockElement wraps one basic block within a method. Its
// signature is just its own buffer (spec §4.5's Basic blocks preset:
// "NCD of buffer", no distinct signature level).
type BasicBlockElement struct {
	base
	info string
}

func NewBasicBlockElement(blk method.BasicBlock, info string, side Side) *BasicBlockElement {
	e := &BasicBlockElement{info: info}
	e.base.side = side
	e.base.initHash(basicBlockBuffer(blk))
	return e
}

func basicBlockBuffer(blk method.BasicBlock) []byte {
	var b strings.Builder
	for _, instr := range blk.Instructions() {
		b.WriteString(instr.Name())
		b.WriteString(instr.Operand())
	}
	return []byte(b.String())
}

func (e *BasicBlockElement) Signature() []byte {
	sig, _, _ := e.signature(e.computeSignature)
	return sig
}

func (e *BasicBlockElement) Entropy() float64 {
	_, ent, _ := e.signature(e.computeSignature)
	return ent
}

func (e *BasicBlockElement) computeSignature() ([]byte, float64, error) {
	return e.buffer, compressor.Entropy(e.buffer), nil
}

func (e *BasicBlockElement) Info() string { return e.info }

// StringElement wraps one literal string cross-referenced by a
// method (spec §4.5's Strings preset).
type StringElement struct {
	base
	value string
}

func NewStringElement(value string, side Side) *StringElement {
	e := &StringElement{value: value}
	e.base.side = side
	e.base.initHash([]byte(value))
	return e
}

func (e *StringElement) Signature() []byte {
	sig, _, _ := e.signature(e.computeSignature)
	return sig
}

func (e *StringElement) Entropy() float64 {
	_, ent, _ := e.signature(e.computeSignature)
	return ent
}

func (e *StringElement) computeSignature() ([]byte, float64, error) {
	return e.buffer, compressor.Entropy(e.buffer), nil
}

func (e *StringElement) Info() string { return e.value }

// SentenceElement wraps one sentence from a text split into
// sentences (spec §1's "two texts split into sentences" example; the
// Text preset of §4.5). The buffer is the trimmed sentence bytes.
type SentenceElement struct {
	base
	text string
}

func NewSentenceElement(sentence string, side Side) *SentenceElement {
	trimmed := strings.TrimSpace(sentence)
	e := &SentenceElement{text: trimmed}
	e.base.side = side
	e.base.initHash([]byte(trimmed))
	return e
}

func (e *SentenceElement) Signature() []byte {
	sig, _, _ := e.signature(e.computeSignature)
	return sig
}

func (e *SentenceElement) Entropy() float64 {
	_, ent, _ := e.signature(e.computeSignature)
	return ent
}

func (e *SentenceElement) computeSignature() ([]byte, float64, error) {
	return e.buffer, compressor.Entropy(e.buffer), nil
}

func (e *SentenceElement) Info() string { return e.text }
