// Package method fixes the seam between this engine and an upstream
// disassembler (spec.md §6, "Upstream (disassembler)"): a read-only
// view over methods, instructions, basic blocks and cross-references.
// No implementation lives here; a real disassembler integration is
// explicitly out of scope (spec.md §1) and would implement these
// interfaces directly. signature.Builder and filter.Methods depend
// only on these types, never on a concrete disassembler.
package method

// View exposes iteration over the internal (non-external) methods of
// a binary or source unit.
type View interface {
	// Methods yields every internal method, in a stable order.
	Methods() []Method
}

// Method is one disassembled method.
type Method interface {
	ID() string
	ClassName() string
	Name() string
	Descriptor() string
	// CodeSize is the code length in bytes, used by size-based skip
	// rules (spec §4.5's Methods preset).
	CodeSize() int

	Instructions() []Instruction
	BasicBlocks() []BasicBlock

	Strings() []StringRef
	Fields() []FieldRef
	Packages() []PackageRef

	ExceptionHandlers() []ExceptionHandler
}

// Instruction is one bytecode instruction.
type Instruction interface {
	Offset() int
	Length() int
	// Opcode is the numeric opcode, used by the L0 terminator-class
	// rule in spec §4.3.
	Opcode() int
	// Name is the canonical mnemonic (e.g. "invoke-virtual").
	Name() string
	// Operand is the canonicalised operand text, already normalised
	// by the upstream disassembler's clean_name/static_operand
	// equivalent.
	Operand() string
}

// BasicBlock is a contiguous run of instructions within one method.
type BasicBlock interface {
	Instructions() []Instruction
}

// StringRef is a string-literal use site within a method.
type StringRef interface {
	Offset() int
	Value() string
}

// FieldRef is a field read or write site within a method.
type FieldRef interface {
	Offset() int
	// Write reports whether this is a write (true) or read (false)
	// site, feeding the L0 F0/F1 sub-strategy in spec §4.3.
	Write() bool
}

// PackageRef is a call or instantiation site to another class or
// method, per spec §4.3's package-access semantics.
type PackageRef interface {
	Offset() int
	// Create reports whether this is a "new-instance" site (true) or
	// a call site (false).
	Create() bool
	ClassName() string
	MethodName() string
	Descriptor() string
	// External reports whether the target resolves outside the
	// binary under analysis; internal call targets are downgraded to
	// access class 2 per spec §4.3 and never emit their name.
	External() bool
}

// ExceptionHandler is one exception-handler entry for a method.
type ExceptionHandler interface {
	// ClassName is the caught exception type's class name, the only
	// datum the L2 signature level uses (spec §4.3).
	ClassName() string
}
