package operators

import (
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
)

type Operator string

const (
	Addition       Operator = "+"
	Subtraction    Operator = "-"
	Multiplication Operator = "*"
	Division       Operator = "/"
	Modulo         Operator = "%"

	Equal              Operator = "=="
	NotEqual           Operator = "!="
	LessThan           Operator = "<"
	LessThanOrEqual    Operator = "<="
	GreaterThan        Operator = ">"
	GreaterThanOrEqual Operator = ">="

	LogicalAnd Operator = "&&"
	LogicalOr  Operator = "||"
)

func (o Operator) IsArithmetic() bool {
	switch o {
	case Addition,
		Subtraction,
		Multiplication,
		Division,
		Modulo:
		return true
	default:
		return false
	}
}

func (o Operator) IsComparison() bool {
	switch o {
	case Equal,
		NotEqual,
		LessThan,
		LessThanOrEqual,
		GreaterThan,
		GreaterThanOrEqual:
		return true
	default:
		return false
	}
}

func (o Operator) IsLogical() bool {
	return o == LogicalAnd || o == LogicalOr
}

func (o Operator) Valid() bool {
	return o.IsArithmetic() || o.IsComparison() || o.IsLogical()
}

// ResultKind is fixed per operator and does not depend on operand kinds.
func (o Operator) ResultKind() kinds.Kind {
	switch {
	case o.IsArithmetic():
		return kinds.Integer
	case o.IsComparison(), o.IsLogical():
		return kinds.Boolean
	default:
		return kinds.None
	}
}

func Parse(s string) (Operator, error) {
	op := Operator(s)
	if !op.Valid() {
		return "", fmt.Errorf("unknown binary operator %q", s)
	}

	return op, nil
}

func (o Operator) String() string {
	return string(o)
}
