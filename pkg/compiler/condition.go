package compiler

import (
	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/parser"
)

type IfStatement struct {
	Condition Expression
	Body      *Block
	Else      *Block

	parser.Position
}

func (s *IfStatement) String() string {
	str := "if (" + s.Condition.String() + ") " + s.Body.String()
	if s.Else != nil {
		str += " else " + s.Else.String()
	}

	return str
}

func (s *IfStatement) ResultType(Symbols) kinds.Kind {
	return kinds.None
}

func (s *IfStatement) Lower(l *Lowering) error {
	failure, end := l.labels.IfLabels()

	err := l.value(s.Condition, RegisterCondition)
	if err != nil {
		return err
	}

	if s.Else == nil {
		l.Code.BranchZero(RegisterCondition, end)
	} else {
		l.Code.BranchZero(RegisterCondition, failure)
	}

	err = s.Body.Lower(l)
	if err != nil {
		return err
	}

	if s.Else != nil {
		if l.JumpOverElse {
			l.Code.Jump(end)
		}

		l.Code.Label(failure)

		err = s.Else.Lower(l)
		if err != nil {
			return err
		}
	}

	l.Code.Label(end)

	return nil
}
