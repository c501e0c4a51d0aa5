package compiler

import (
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
)

// Program is the result of one compilation: the checked tree, its symbol
// table and the lowered instruction sequence.
type Program struct {
	root    *Block
	symbols *SymbolTable
	code    mips.Snippet

	ifs   int
	loops int

	references []*Identifier
}

func newProgram() *Program {
	return &Program{
		root:    &Block{},
		symbols: NewSymbolTable(),
	}
}

func (p *Program) Root() *Block {
	return p.root
}

func (p *Program) Symbols() *SymbolTable {
	return p.symbols
}

// Instructions returns the lowered sequence in program order.
func (p *Program) Instructions() mips.Snippet {
	return p.code
}

// Labels returns how many conditionals and loops were labelled.
func (p *Program) Labels() (ifs, loops int) {
	return p.ifs, p.loops
}

// String reconstructs the program source.
func (p *Program) String() string {
	body := p.root.body()
	if body == "" {
		return ""
	}

	return body + "\n"
}

func (p *Program) lower(config Config) error {
	l := NewLowering(p.symbols)
	l.StrictComparisons = config.StrictComparisons
	l.JumpOverElse = config.JumpOverElse

	err := p.root.Lower(l)
	if err != nil {
		return err
	}

	p.code = l.Code
	p.ifs, p.loops = l.Labels().Allocated()

	return nil
}
