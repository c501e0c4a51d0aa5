package interpreter

import "github.com/rhino1998/mipsc/pkg/compiler/kinds"

// Variable is one zero-initialized word of static storage.
type Variable struct {
	kind  kinds.Kind
	value int32
}

func NewVariable(kind kinds.Kind) *Variable {
	return &Variable{
		kind: kind,
	}
}

func (v *Variable) Kind() kinds.Kind {
	return v.kind
}

func (v *Variable) Value() int32 {
	return v.value
}

func (v *Variable) Set(val int32) {
	v.value = val
}
