package compiler

import (
	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/parser"
)

type WhileStatement struct {
	Condition Expression
	Body      *Block

	parser.Position
}

func (s *WhileStatement) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

func (s *WhileStatement) ResultType(Symbols) kinds.Kind {
	return kinds.None
}

func (s *WhileStatement) Lower(l *Lowering) error {
	start, end := l.labels.LoopLabels()

	l.Code.Label(start)

	err := l.value(s.Condition, RegisterCondition)
	if err != nil {
		return err
	}

	l.Code.BranchZero(RegisterCondition, end)

	err = s.Body.Lower(l)
	if err != nil {
		return err
	}

	l.Code.Jump(start)
	l.Code.Label(end)

	return nil
}
