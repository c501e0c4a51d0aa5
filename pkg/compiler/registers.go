package compiler

import "github.com/rhino1998/mipsc/pkg/compiler/mips"

// Statements evaluate their value into $t1 and the destination address into
// $t0. Branch conditions are evaluated into $t0.
const (
	RegisterAddress   = mips.T0
	RegisterValue     = mips.T1
	RegisterCondition = mips.T0
)

func checkRegister(reg mips.Register) error {
	if !reg.Valid() {
		return ErrRegisterPoolExhausted
	}

	return nil
}

// nextRegister returns the temporary after reg in the $t0..$t9 cycle.
func nextRegister(reg mips.Register) (mips.Register, error) {
	next := reg.Next()
	if !next.Valid() {
		return mips.RegisterNone, ErrRegisterPoolExhausted
	}

	return next, nil
}
