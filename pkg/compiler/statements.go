package compiler

import (
	"strings"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
	"github.com/rhino1998/mipsc/pkg/parser"
)

// ExpressionStatement evaluates an expression into $t0 and discards it.
type ExpressionStatement struct {
	Expression Expression

	parser.Position
}

func (s *ExpressionStatement) String() string {
	return s.Expression.String() + ";"
}

func (s *ExpressionStatement) ResultType(Symbols) kinds.Kind {
	return kinds.None
}

func (s *ExpressionStatement) Lower(l *Lowering) error {
	_, err := s.Expression.Lower(l, mips.T0)
	return err
}

type Block struct {
	Statements []Statement

	parser.Position
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "\t" + line
		}
	}

	return strings.Join(lines, "\n")
}

func (b *Block) body() string {
	stmts := make([]string, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		stmts = append(stmts, stmt.String())
	}

	return strings.Join(stmts, "\n")
}

func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}

	return "{\n" + indent(b.body()) + "\n}"
}

func (b *Block) ResultType(Symbols) kinds.Kind {
	return kinds.None
}

// Lower emits the program prologue if nothing has been emitted yet, then
// lowers each statement in order.
func (b *Block) Lower(l *Lowering) error {
	if l.Code.Empty() {
		l.prologue()
	}

	for _, stmt := range b.Statements {
		err := stmt.Lower(l)
		if err != nil {
			return err
		}
	}

	return nil
}
