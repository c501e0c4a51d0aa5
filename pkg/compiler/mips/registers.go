package mips

import "fmt"

// NumTemporaries is the size of the scratch register file ($t0-$t9).
const NumTemporaries = 10

type Register int8

const (
	RegisterNone Register = -1

	T0 Register = iota - 1
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	T8
	T9
)

func (r Register) Valid() bool {
	return r >= T0 && r <= T9
}

// Next returns the register after r in the fixed $t0..$t9 cycle. The
// register after $t9 is RegisterNone.
func (r Register) Next() Register {
	if !r.Valid() || r == T9 {
		return RegisterNone
	}

	return r + 1
}

func (r Register) String() string {
	if !r.Valid() {
		return "<none>"
	}

	return fmt.Sprintf("$t%d", int8(r))
}
