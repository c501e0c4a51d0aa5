package compiler

import (
	"strconv"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
	"github.com/rhino1998/mipsc/pkg/parser"
)

type BooleanLiteral struct {
	Value bool

	parser.Position
}

func (e *BooleanLiteral) String() string {
	return strconv.FormatBool(e.Value)
}

func (e *BooleanLiteral) ResultType(Symbols) kinds.Kind {
	return kinds.Boolean
}

func (e *BooleanLiteral) Lower(l *Lowering, reg mips.Register) (Result, error) {
	err := checkRegister(reg)
	if err != nil {
		return ResultValue, e.WrapError(err)
	}

	var v mips.Int
	if e.Value {
		v = 1
	}

	l.Code.LoadImmediate(reg, v)

	return ResultValue, nil
}

type IntegerLiteral struct {
	Value int32

	parser.Position
}

func (e *IntegerLiteral) String() string {
	return strconv.FormatInt(int64(e.Value), 10)
}

func (e *IntegerLiteral) ResultType(Symbols) kinds.Kind {
	return kinds.Integer
}

func (e *IntegerLiteral) Lower(l *Lowering, reg mips.Register) (Result, error) {
	err := checkRegister(reg)
	if err != nil {
		return ResultValue, e.WrapError(err)
	}

	l.Code.LoadImmediate(reg, mips.Int(e.Value))

	return ResultValue, nil
}
