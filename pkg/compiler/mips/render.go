package mips

import (
	"fmt"
	"io"
	"strings"
)

// Renderer turns instructions into assembly text. Each synthesized
// comparison kind draws its fallthrough labels from its own counter, so a
// Renderer must be shared by every instruction of one program.
type Renderer struct {
	labels [numConditions]uint32
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) nextLabel(cond Condition) Label {
	n := r.labels[cond]
	r.labels[cond]++

	return Label(fmt.Sprintf("%s_%d", conditionInfo[cond].label, n))
}

// Render returns the newline-terminated text of inst. It fails only for
// instructions whose operands cannot be rendered.
func (r *Renderer) Render(inst Instruction) (string, error) {
	err := Validate(inst)
	if err != nil {
		return "", err
	}

	switch inst := inst.(type) {
	case Raw:
		return inst.Text, nil
	case Assign:
		return fmt.Sprintf("ADDI %v, %v, 0\n", inst.Dst, inst.Src), nil
	case LoadImmediate:
		return fmt.Sprintf("LI %v, %v\n", inst.Dst, inst.Value), nil
	case LoadAddress:
		return fmt.Sprintf("LA %v, %v\n", inst.Dst, inst.Addr), nil
	case Load:
		return fmt.Sprintf("LW %v, 0(%v)\n", inst.Dst, inst.Addr), nil
	case Store:
		return fmt.Sprintf("SW %v, 0(%v)\n", inst.Src, inst.Addr), nil
	case LabelDef:
		return fmt.Sprintf("%v:\n", inst.Label), nil
	case Jump:
		return fmt.Sprintf("J %v\n", inst.Target), nil
	case Branch:
		if !inst.Cond.Valid() {
			return "", fmt.Errorf("unhandled branch condition %v", inst.Cond)
		}

		return fmt.Sprintf("%s %v, %v, %v\n", inst.Cond.BranchMnemonic(), inst.Left, inst.Right, inst.Target), nil
	case Compare:
		return r.renderCompare(inst)
	case Logic:
		return fmt.Sprintf("%s %v, %v, %v\n", inst.Op.Mnemonic(), inst.Dst, inst.Left, inst.Right), nil
	case Arith:
		return r.renderArith(inst)
	default:
		return "", fmt.Errorf("unhandled instruction type %T", inst)
	}
}

func (r *Renderer) renderCompare(inst Compare) (string, error) {
	if !inst.Cond.Valid() {
		return "", fmt.Errorf("unhandled comparison condition %v", inst.Cond)
	}

	if !inst.Cond.Synthesized() {
		return fmt.Sprintf("SLT %v, %v, %v\n", inst.Dst, inst.Left, inst.Right), nil
	}

	label := r.nextLabel(inst.Cond)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %v, %v, %v\n", inst.Cond.Inverse().BranchMnemonic(), inst.Left, inst.Right, label)
	fmt.Fprintf(&sb, "ADDI %v, $zero, 1\n", inst.Dst)
	fmt.Fprintf(&sb, "%v:\n", label)

	return sb.String(), nil
}

func (r *Renderer) renderArith(inst Arith) (string, error) {
	switch inst.Op {
	case Add, Sub:
		return fmt.Sprintf("%s %v, %v, %v\n", inst.Op.Mnemonic(), inst.Dst, inst.Left, inst.Right), nil
	case Mul, Div:
		return fmt.Sprintf("%s %v, %v\nMFLO %v\n", inst.Op.Mnemonic(), inst.Left, inst.Right, inst.Dst), nil
	case Mod:
		return fmt.Sprintf("%s %v, %v\nMFHI %v\n", inst.Op.Mnemonic(), inst.Left, inst.Right, inst.Dst), nil
	default:
		return "", fmt.Errorf("unhandled arithmetic operator %v", inst.Op.Mnemonic())
	}
}

// RenderAll renders s in order and returns one fragment per instruction.
func (r *Renderer) RenderAll(s Snippet) ([]string, error) {
	frags := make([]string, 0, len(s))
	for i, inst := range s {
		frag, err := r.Render(inst)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}

		frags = append(frags, frag)
	}

	return frags, nil
}

// RenderTo renders s to w and returns the number of bytes written.
func (r *Renderer) RenderTo(w io.Writer, s Snippet) (int64, error) {
	var total int64
	for i, inst := range s {
		frag, err := r.Render(inst)
		if err != nil {
			return total, fmt.Errorf("instruction %d: %w", i, err)
		}

		n, err := io.WriteString(w, frag)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
