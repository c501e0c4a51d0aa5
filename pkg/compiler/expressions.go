package compiler

import (
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
	"github.com/rhino1998/mipsc/pkg/compiler/operators"
	"github.com/rhino1998/mipsc/pkg/parser"
)

type Identifier struct {
	Name string

	parser.Position
}

func (e *Identifier) String() string {
	return e.Name
}

func (e *Identifier) ResultType(symbols Symbols) kinds.Kind {
	return symbols.Get(e.Name)
}

// Lower leaves the address of the named location in reg.
func (e *Identifier) Lower(l *Lowering, reg mips.Register) (Result, error) {
	err := checkRegister(reg)
	if err != nil {
		return ResultAddress, e.WrapError(err)
	}

	l.Code.LoadAddress(reg, e.Name)

	return ResultAddress, nil
}

type BinaryExpression struct {
	Left     Expression
	Operator operators.Operator
	Right    Expression

	parser.Position
}

func operandString(expr Expression) string {
	if _, ok := expr.(*BinaryExpression); ok {
		return "(" + expr.String() + ")"
	}

	return expr.String()
}

func (e *BinaryExpression) String() string {
	return operandString(e.Left) + " " + string(e.Operator) + " " + operandString(e.Right)
}

func (e *BinaryExpression) ResultType(Symbols) kinds.Kind {
	return e.Operator.ResultKind()
}

var comparisonConditions = map[operators.Operator]mips.Condition{
	operators.LessThan:           mips.LessThan,
	operators.LessThanOrEqual:    mips.LessEqual,
	operators.NotEqual:           mips.NotEqual,
	operators.Equal:              mips.Equal,
	operators.GreaterThanOrEqual: mips.GreaterEqual,
	operators.GreaterThan:        mips.GreaterThan,
}

var arithmeticOps = map[operators.Operator]mips.ArithOp{
	operators.Addition:       mips.Add,
	operators.Subtraction:    mips.Sub,
	operators.Multiplication: mips.Mul,
	operators.Division:       mips.Div,
	operators.Modulo:         mips.Mod,
}

var logicOps = map[operators.Operator]mips.LogicOp{
	operators.LogicalAnd: mips.And,
	operators.LogicalOr:  mips.Or,
}

// Lower evaluates the left operand into reg and the right operand into the
// register after it, then combines them into reg. Both operands are always
// evaluated.
func (e *BinaryExpression) Lower(l *Lowering, reg mips.Register) (Result, error) {
	err := checkRegister(reg)
	if err != nil {
		return ResultValue, e.WrapError(err)
	}

	right, err := nextRegister(reg)
	if err != nil {
		return ResultValue, e.WrapError(fmt.Errorf("cannot evaluate %s: %w", e, err))
	}

	err = l.value(e.Left, reg)
	if err != nil {
		return ResultValue, err
	}

	err = l.value(e.Right, right)
	if err != nil {
		return ResultValue, err
	}

	if op, ok := arithmeticOps[e.Operator]; ok {
		l.Code.Arith(op, reg, reg, right)
		return ResultValue, nil
	}

	if op, ok := logicOps[e.Operator]; ok {
		l.Code.Logic(op, reg, reg, right)
		return ResultValue, nil
	}

	if cond, ok := comparisonConditions[e.Operator]; ok {
		err := l.compare(cond, reg, right)
		if err != nil {
			return ResultValue, e.WrapError(fmt.Errorf("cannot evaluate %s: %w", e, err))
		}
		return ResultValue, nil
	}

	return ResultValue, e.WrapError(fmt.Errorf("unhandled binary operator %q", e.Operator))
}
