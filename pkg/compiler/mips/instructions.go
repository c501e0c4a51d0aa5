package mips

import "fmt"

type Instruction interface {
	Name() string
}

type Label string

func (l Label) String() string {
	return string(l)
}

// Raw carries pre-formatted text such as section directives and static data
// declarations.
type Raw struct {
	Text string
}

func (Raw) Name() string { return "raw" }

func (r Raw) String() string {
	return fmt.Sprintf("(raw %q)", r.Text)
}

// Assign copies one register into another.
type Assign struct {
	Dst Operand
	Src Operand
}

func (Assign) Name() string { return "assign" }

func (a Assign) String() string {
	return fmt.Sprintf("(assign %v %v)", a.Dst, a.Src)
}

type LoadImmediate struct {
	Dst   Operand
	Value Operand
}

func (LoadImmediate) Name() string { return "li" }

func (l LoadImmediate) String() string {
	return fmt.Sprintf("(li %v %v)", l.Dst, l.Value)
}

// LoadAddress leaves the address of a named memory location in Dst. The
// value stored there still has to be loaded through Load.
type LoadAddress struct {
	Dst  Operand
	Addr Operand
}

func (LoadAddress) Name() string { return "la" }

func (l LoadAddress) String() string {
	return fmt.Sprintf("(la %v %v)", l.Dst, l.Addr)
}

type Load struct {
	Dst  Operand
	Addr Operand
}

func (Load) Name() string { return "lw" }

func (l Load) String() string {
	return fmt.Sprintf("(lw %v [%v])", l.Dst, l.Addr)
}

type Store struct {
	Src  Operand
	Addr Operand
}

func (Store) Name() string { return "sw" }

func (s Store) String() string {
	return fmt.Sprintf("(sw %v [%v])", s.Src, s.Addr)
}

type LabelDef struct {
	Label Label
}

func (LabelDef) Name() string { return "label" }

func (l LabelDef) String() string {
	return fmt.Sprintf("(label %v)", l.Label)
}

type Jump struct {
	Target Label
}

func (Jump) Name() string { return "j" }

func (j Jump) String() string {
	return fmt.Sprintf("(j %v)", j.Target)
}

// Branch jumps to Target when Cond holds between Left and Right.
type Branch struct {
	Cond   Condition
	Left   Operand
	Right  Operand
	Target Label
}

func (Branch) Name() string { return "branch" }

func (b Branch) String() string {
	return fmt.Sprintf("(b%v %v %v %v)", b.Cond, b.Left, b.Right, b.Target)
}

// Compare sets Dst to 1 when Cond holds between Left and Right. Only
// LessThan clears Dst when the condition fails; every other condition leaves
// Dst untouched, so its result is only 0/1 if Dst held 0 beforehand.
type Compare struct {
	Cond  Condition
	Dst   Operand
	Left  Operand
	Right Operand
}

func (Compare) Name() string { return "cmp" }

func (c Compare) String() string {
	return fmt.Sprintf("(s%v %v %v %v)", c.Cond, c.Dst, c.Left, c.Right)
}

type Logic struct {
	Op    LogicOp
	Dst   Operand
	Left  Operand
	Right Operand
}

func (Logic) Name() string { return "logic" }

func (l Logic) String() string {
	return fmt.Sprintf("(%s %v %v %v)", l.Op.Mnemonic(), l.Dst, l.Left, l.Right)
}

type Arith struct {
	Op    ArithOp
	Dst   Operand
	Left  Operand
	Right Operand
}

func (Arith) Name() string { return "arith" }

func (a Arith) String() string {
	return fmt.Sprintf("(%s %v %v %v)", a.Op.Mnemonic(), a.Dst, a.Left, a.Right)
}

// Operands returns every operand referenced by inst.
func Operands(inst Instruction) ([]Operand, error) {
	switch inst := inst.(type) {
	case Raw, LabelDef, Jump:
		return nil, nil
	case Assign:
		return []Operand{inst.Dst, inst.Src}, nil
	case LoadImmediate:
		return []Operand{inst.Dst, inst.Value}, nil
	case LoadAddress:
		return []Operand{inst.Dst, inst.Addr}, nil
	case Load:
		return []Operand{inst.Dst, inst.Addr}, nil
	case Store:
		return []Operand{inst.Src, inst.Addr}, nil
	case Branch:
		return []Operand{inst.Left, inst.Right}, nil
	case Compare:
		return []Operand{inst.Dst, inst.Left, inst.Right}, nil
	case Logic:
		return []Operand{inst.Dst, inst.Left, inst.Right}, nil
	case Arith:
		return []Operand{inst.Dst, inst.Left, inst.Right}, nil
	default:
		return nil, fmt.Errorf("unhandled instruction type %T", inst)
	}
}

// Validate checks that every operand of inst can be rendered.
func Validate(inst Instruction) error {
	operands, err := Operands(inst)
	if err != nil {
		return err
	}

	for _, operand := range operands {
		err := operand.Validate()
		if err != nil {
			return fmt.Errorf("invalid %s operand: %w", inst.Name(), err)
		}
	}

	return nil
}
