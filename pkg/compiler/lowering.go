package compiler

import (
	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
)

// Result tells the consumer of a lowered expression whether the register
// holds the value itself or the address of the value.
type Result int

const (
	ResultValue Result = iota
	ResultAddress
)

func (r Result) String() string {
	switch r {
	case ResultValue:
		return "value"
	case ResultAddress:
		return "address"
	default:
		return "<unknown>"
	}
}

type Node interface {
	// String reconstructs the source text of the node.
	String() string
	ResultType(Symbols) kinds.Kind
	WrapError(error) error
}

type Expression interface {
	Node
	Lower(l *Lowering, reg mips.Register) (Result, error)
}

type Statement interface {
	Node
	Lower(l *Lowering) error
}

// Lowering is the state shared by one lowering pass: the instruction
// sequence being built, the symbol table and the label counters.
type Lowering struct {
	Code mips.Snippet

	// StrictComparisons lowers synthesized comparisons through a zeroed
	// scratch register so that a false result is always 0.
	StrictComparisons bool

	// JumpOverElse ends a then-branch with a jump past its else-branch
	// instead of falling through into it.
	JumpOverElse bool

	symbols Symbols
	labels  *LabelAllocator
}

func NewLowering(symbols Symbols) *Lowering {
	return &Lowering{
		symbols: symbols,
		labels:  new(LabelAllocator),
	}
}

func (l *Lowering) Symbols() Symbols {
	return l.symbols
}

func (l *Lowering) Labels() *LabelAllocator {
	return l.labels
}

// value lowers expr into reg and loads through the register when expr left
// an address behind.
func (l *Lowering) value(expr Expression, reg mips.Register) error {
	res, err := expr.Lower(l, reg)
	if err != nil {
		return err
	}

	if res == ResultAddress {
		l.Code.Dereference(reg)
	}

	return nil
}

// prologue emits the static data and text section headers.
func (l *Lowering) prologue() {
	if !l.symbols.Empty() {
		l.Code.Raw(".data\n")
		for _, sym := range l.symbols.All() {
			l.Code.Raw(sym.Name + ": .word 0\n")
		}
	}

	l.Code.Raw(".text\n")
}

func (l *Lowering) compare(cond mips.Condition, dst, right mips.Register) error {
	if !l.StrictComparisons || !cond.Synthesized() {
		l.Code.Compare(cond, dst, dst, right)
		return nil
	}

	scratch, err := nextRegister(right)
	if err != nil {
		return err
	}

	l.Code.LoadImmediate(scratch, 0)
	l.Code.Compare(cond, scratch, dst, right)
	l.Code.Assign(dst, scratch)

	return nil
}
