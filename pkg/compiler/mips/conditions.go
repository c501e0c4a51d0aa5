package mips

import "fmt"

type Condition int

const (
	LessThan Condition = iota
	LessEqual
	NotEqual
	Equal
	GreaterEqual
	GreaterThan

	numConditions = iota
)

var conditionInfo = [numConditions]struct {
	name    string
	branch  string
	inverse Condition
	label   string
}{
	LessThan:     {"lt", "BLT", GreaterEqual, "LessThan"},
	LessEqual:    {"le", "BLE", GreaterThan, "LessEqual"},
	NotEqual:     {"ne", "BNE", Equal, "NotEqual"},
	Equal:        {"eq", "BEQ", NotEqual, "Equal"},
	GreaterEqual: {"ge", "BGE", LessThan, "GreaterEqual"},
	GreaterThan:  {"gt", "BGT", LessEqual, "GreaterThan"},
}

func (c Condition) Valid() bool {
	return c >= 0 && c < numConditions
}

func (c Condition) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Condition(%d)", int(c))
	}

	return conditionInfo[c].name
}

// BranchMnemonic is the opcode of the branch taken when c holds.
func (c Condition) BranchMnemonic() string {
	return conditionInfo[c].branch
}

func (c Condition) Inverse() Condition {
	return conditionInfo[c].inverse
}

// Holds evaluates c over two signed words.
func (c Condition) Holds(a, b Int) bool {
	switch c {
	case LessThan:
		return a < b
	case LessEqual:
		return a <= b
	case NotEqual:
		return a != b
	case Equal:
		return a == b
	case GreaterEqual:
		return a >= b
	case GreaterThan:
		return a > b
	default:
		return false
	}
}

// Synthesized reports whether a boolean result for c has no single opcode
// and must be built from a branch around an immediate set.
func (c Condition) Synthesized() bool {
	return c != LessThan
}

type LogicOp int

const (
	And LogicOp = iota
	Or
)

func (o LogicOp) Mnemonic() string {
	switch o {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return fmt.Sprintf("LogicOp(%d)", int(o))
	}
}

type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

func (o ArithOp) Mnemonic() string {
	switch o {
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Mul:
		return "MULT"
	case Div, Mod:
		return "DIV"
	default:
		return fmt.Sprintf("ArithOp(%d)", int(o))
	}
}

// Wide reports whether the target computes o into HI/LO rather than into a
// general register.
func (o ArithOp) Wide() bool {
	return o == Mul || o == Div || o == Mod
}
