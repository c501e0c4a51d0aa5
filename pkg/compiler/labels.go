package compiler

import (
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler/mips"
)

// LabelAllocator hands out label suffixes for control constructs. Every
// conditional shares one counter and every loop shares another; neither is
// ever reset within a compilation.
type LabelAllocator struct {
	ifs   uint32
	loops uint32
}

func (a *LabelAllocator) IfLabels() (failure, end mips.Label) {
	n := a.ifs
	a.ifs++

	return mips.Label(fmt.Sprintf("IfThenElse_Failure_%d", n)), mips.Label(fmt.Sprintf("IfThenElse_End_%d", n))
}

func (a *LabelAllocator) LoopLabels() (start, end mips.Label) {
	n := a.loops
	a.loops++

	return mips.Label(fmt.Sprintf("WhileLoop_Start_%d", n)), mips.Label(fmt.Sprintf("WhileLoop_End_%d", n))
}

// Allocated returns how many conditionals and loops have been labelled.
func (a *LabelAllocator) Allocated() (ifs, loops int) {
	return int(a.ifs), int(a.loops)
}
