package element

import (
	"testing"

	"github.com/gosimilarity/elsim/method"
	"github.com/gosimilarity/elsim/signature"
)

type fakeInstruction struct {
	offset  int
	length  int
	opcode  int
	name    string
	operand string
}

func (i fakeInstruction) Offset() int     { return i.offset }
func (i fakeInstruction) Length() int     { return i.length }
func (i fakeInstruction) Opcode() int     { return i.opcode }
func (i fakeInstruction) Name() string    { return i.name }
func (i fakeInstruction) Operand() string { return i.operand }

type fakeBlock struct {
	instrs []method.Instruction
}

func (b fakeBlock) Instructions() []method.Instruction { return b.instrs }

type fakeMethod struct {
	id     string
	class  string
	name   string
	desc   string
	instrs []method.Instruction
	blocks []method.BasicBlock
}

func (m fakeMethod) ID() string                                    { return m.id }
func (m fakeMethod) ClassName() string                             { return m.class }
func (m fakeMethod) Name() string                                  { return m.name }
func (m fakeMethod) Descriptor() string                            { return m.desc }
func (m fakeMethod) CodeSize() int                                 { return len(m.instrs) * 2 }
func (m fakeMethod) Instructions() []method.Instruction            { return m.instrs }
func (m fakeMethod) BasicBlocks() []method.BasicBlock              { return m.blocks }
func (m fakeMethod) Strings() []method.StringRef                   { return nil }
func (m fakeMethod) Fields() []method.FieldRef                     { return nil }
func (m fakeMethod) Packages() []method.PackageRef                 { return nil }
func (m fakeMethod) ExceptionHandlers() []method.ExceptionHandler  { return nil }

func newTestMethod() fakeMethod {
	instrs := []method.Instruction{
		fakeInstruction{offset: 0, length: 2, opcode: 0x01, name: "const/4", operand: "v0, #1"},
		fakeInstruction{offset: 2, length: 2, opcode: 0x0E, name: "return-void"},
	}
	return fakeMethod{
		id:     "Lcom/example/Foo;->bar()V",
		class:  "Lcom/example/Foo;",
		name:   "bar",
		desc:   "()V",
		instrs: instrs,
		blocks: []method.BasicBlock{fakeBlock{instrs: instrs}},
	}
}

func TestMethodElementHashIsStableAndLazySignature(t *testing.T) {
	m := newTestMethod()
	b := signature.NewBuilder()

	e := NewMethodElement(m, b, signature.L0_4, Side1)
	h1 := e.Hash()
	h2 := e.Hash()
	if h1 != h2 {
		t.Fatal("hash changed between calls")
	}

	sig := e.Signature()
	if sig == nil {
		t.Fatal("expected a non-nil signature for a non-empty method")
	}
	if e.Side() != Side1 {
		t.Fatalf("Side() = %v, want Side1", e.Side())
	}
}

func TestIdenticalBuffersProduceIdenticalHashes(t *testing.T) {
	a := NewStringElement("hello world", Side1)
	b := NewStringElement("hello world", Side2)

	if a.Hash() != b.Hash() {
		t.Fatal("equal buffers produced different hashes")
	}
}

func TestDifferentBuffersProduceDifferentHashes(t *testing.T) {
	a := NewStringElement("hello world", Side1)
	b := NewStringElement("goodbye world", Side1)

	if a.Hash() == b.Hash() {
		t.Fatal("different buffers produced the same hash")
	}
}

func TestSentenceElementTrimsWhitespace(t *testing.T) {
	e := NewSentenceElement("  hello there  \n", Side1)
	if e.Info() != "hello there" {
		t.Fatalf("Info() = %q, want trimmed sentence", e.Info())
	}
	if e.Length() != len("hello there") {
		t.Fatalf("Length() = %d, want %d", e.Length(), len("hello there"))
	}
}

func TestBasicBlockElementSignatureEqualsBuffer(t *testing.T) {
	m := newTestMethod()
	blk := m.blocks[0]
	e := NewBasicBlockElement(blk, "block#0", Side1)

	if string(e.Signature()) != string(e.Buffer()) {
		t.Fatal("basic block signature should equal its buffer")
	}
}

func TestEmptyStringElementHasZeroEntropy(t *testing.T) {
	e := NewStringElement("", Side2)
	if e.Entropy() != 0.0 {
		t.Fatalf("Entropy() = %v, want 0 for empty buffer", e.Entropy())
	}
}
