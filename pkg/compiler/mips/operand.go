package mips

import (
	"fmt"
	"strconv"
)

type OperandKind int

const (
	OperandKindUnknown OperandKind = iota
	OperandKindImmediate
	OperandKindRegister
	OperandKindMemory
)

func (k OperandKind) String() string {
	switch k {
	case OperandKindImmediate:
		return "I"
	case OperandKindRegister:
		return "R"
	case OperandKindMemory:
		return "M"
	default:
		return "?"
	}
}

type Int int32

type Memory string

// Operand is an immutable value; Value holds an Int, a Register or a Memory
// according to Kind.
type Operand struct {
	Kind  OperandKind
	Value any
}

func ImmediateOperand(v Int) Operand {
	return Operand{
		Kind:  OperandKindImmediate,
		Value: v,
	}
}

func RegisterOperand(reg Register) Operand {
	return Operand{
		Kind:  OperandKindRegister,
		Value: reg,
	}
}

func MemoryOperand(name string) Operand {
	return Operand{
		Kind:  OperandKindMemory,
		Value: Memory(name),
	}
}

func (o Operand) Register() (Register, bool) {
	if o.Kind != OperandKindRegister {
		return RegisterNone, false
	}

	reg, ok := o.Value.(Register)
	return reg, ok
}

func (o Operand) Immediate() (Int, bool) {
	if o.Kind != OperandKindImmediate {
		return 0, false
	}

	v, ok := o.Value.(Int)
	return v, ok
}

func (o Operand) Memory() (string, bool) {
	if o.Kind != OperandKindMemory {
		return "", false
	}

	v, ok := o.Value.(Memory)
	return string(v), ok
}

// Validate reports operands that cannot be rendered, such as an exhausted
// register.
func (o Operand) Validate() error {
	switch o.Kind {
	case OperandKindImmediate:
		if _, ok := o.Value.(Int); !ok {
			return fmt.Errorf("immediate operand holds %T", o.Value)
		}
	case OperandKindRegister:
		reg, ok := o.Value.(Register)
		if !ok {
			return fmt.Errorf("register operand holds %T", o.Value)
		}

		if !reg.Valid() {
			return fmt.Errorf("register operand %d is outside $t0-$t9", int8(reg))
		}
	case OperandKindMemory:
		if _, ok := o.Value.(Memory); !ok {
			return fmt.Errorf("memory operand holds %T", o.Value)
		}
	default:
		return fmt.Errorf("unhandled operand kind %q", o.Kind)
	}

	return nil
}

func (o Operand) String() string {
	switch v := o.Value.(type) {
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Register:
		return v.String()
	case Memory:
		return string(v)
	default:
		return "ERROR"
	}
}
