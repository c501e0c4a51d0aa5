package compiler

import (
	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/parser"
)

type AssignmentStatement struct {
	Left  *Identifier
	Right Expression

	parser.Position
}

func (s *AssignmentStatement) String() string {
	return s.Left.String() + " = " + s.Right.String() + ";"
}

func (s *AssignmentStatement) ResultType(symbols Symbols) kinds.Kind {
	return s.Left.ResultType(symbols)
}

func (s *AssignmentStatement) Lower(l *Lowering) error {
	err := l.value(s.Right, RegisterValue)
	if err != nil {
		return err
	}

	_, err = s.Left.Lower(l, RegisterAddress)
	if err != nil {
		return err
	}

	l.Code.Store(RegisterValue, RegisterAddress)

	return nil
}

// DeclarationStatement declares an int or bool. Storage is reserved by the
// program prologue, so only an initializer produces code.
type DeclarationStatement struct {
	Kind       kinds.Kind
	Name       string
	Expression Expression

	parser.Position
}

func (s *DeclarationStatement) String() string {
	if s.Expression == nil {
		return s.Kind.Keyword() + " " + s.Name + ";"
	}

	return s.Kind.Keyword() + " " + s.Name + " = " + s.Expression.String() + ";"
}

func (s *DeclarationStatement) ResultType(Symbols) kinds.Kind {
	return kinds.None
}

func (s *DeclarationStatement) Lower(l *Lowering) error {
	if s.Expression == nil {
		return nil
	}

	err := l.value(s.Expression, RegisterValue)
	if err != nil {
		return err
	}

	l.Code.LoadAddress(RegisterAddress, s.Name)
	l.Code.Store(RegisterValue, RegisterAddress)

	return nil
}
