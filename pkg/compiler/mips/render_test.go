package mips_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rhino1998/mipsc/pkg/compiler/mips"
	"github.com/stretchr/testify/require"
)

func reg(r mips.Register) mips.Operand { return mips.RegisterOperand(r) }

func TestRender_Simple(t *testing.T) {
	tests := []struct {
		name string
		inst mips.Instruction
		want string
	}{
		{"raw", mips.Raw{Text: ".text\n"}, ".text\n"},
		{"assign", mips.Assign{Dst: reg(mips.T3), Src: reg(mips.T4)}, "ADDI $t3, $t4, 0\n"},
		{"li", mips.LoadImmediate{Dst: reg(mips.T0), Value: mips.ImmediateOperand(-42)}, "LI $t0, -42\n"},
		{"la", mips.LoadAddress{Dst: reg(mips.T1), Addr: mips.MemoryOperand("counter")}, "LA $t1, counter\n"},
		{"lw", mips.Load{Dst: reg(mips.T2), Addr: reg(mips.T2)}, "LW $t2, 0($t2)\n"},
		{"sw", mips.Store{Src: reg(mips.T1), Addr: reg(mips.T0)}, "SW $t1, 0($t0)\n"},
		{"label", mips.LabelDef{Label: "loop"}, "loop:\n"},
		{"jump", mips.Jump{Target: "loop"}, "J loop\n"},
		{"blt", mips.Branch{Cond: mips.LessThan, Left: reg(mips.T0), Right: reg(mips.T1), Target: "L"}, "BLT $t0, $t1, L\n"},
		{"ble", mips.Branch{Cond: mips.LessEqual, Left: reg(mips.T0), Right: reg(mips.T1), Target: "L"}, "BLE $t0, $t1, L\n"},
		{"bne", mips.Branch{Cond: mips.NotEqual, Left: reg(mips.T0), Right: reg(mips.T1), Target: "L"}, "BNE $t0, $t1, L\n"},
		{"beq zero", mips.Branch{Cond: mips.Equal, Left: reg(mips.T0), Right: mips.ImmediateOperand(0), Target: "End"}, "BEQ $t0, 0, End\n"},
		{"bge", mips.Branch{Cond: mips.GreaterEqual, Left: reg(mips.T0), Right: reg(mips.T1), Target: "L"}, "BGE $t0, $t1, L\n"},
		{"bgt", mips.Branch{Cond: mips.GreaterThan, Left: reg(mips.T0), Right: reg(mips.T1), Target: "L"}, "BGT $t0, $t1, L\n"},
		{"slt", mips.Compare{Cond: mips.LessThan, Dst: reg(mips.T0), Left: reg(mips.T0), Right: reg(mips.T1)}, "SLT $t0, $t0, $t1\n"},
		{"and", mips.Logic{Op: mips.And, Dst: reg(mips.T5), Left: reg(mips.T5), Right: reg(mips.T6)}, "AND $t5, $t5, $t6\n"},
		{"or", mips.Logic{Op: mips.Or, Dst: reg(mips.T5), Left: reg(mips.T5), Right: reg(mips.T6)}, "OR $t5, $t5, $t6\n"},
		{"add", mips.Arith{Op: mips.Add, Dst: reg(mips.T1), Left: reg(mips.T1), Right: reg(mips.T2)}, "ADD $t1, $t1, $t2\n"},
		{"sub", mips.Arith{Op: mips.Sub, Dst: reg(mips.T1), Left: reg(mips.T1), Right: reg(mips.T2)}, "SUB $t1, $t1, $t2\n"},
		{"mul", mips.Arith{Op: mips.Mul, Dst: reg(mips.T1), Left: reg(mips.T1), Right: reg(mips.T2)}, "MULT $t1, $t2\nMFLO $t1\n"},
		{"div", mips.Arith{Op: mips.Div, Dst: reg(mips.T1), Left: reg(mips.T1), Right: reg(mips.T2)}, "DIV $t1, $t2\nMFLO $t1\n"},
		{"mod", mips.Arith{Op: mips.Mod, Dst: reg(mips.T1), Left: reg(mips.T1), Right: reg(mips.T2)}, "DIV $t1, $t2\nMFHI $t1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)

			got, err := mips.NewRenderer().Render(tt.inst)
			r.NoError(err)
			r.Equal(tt.want, got)
		})
	}
}

func TestRender_SynthesizedComparisons(t *testing.T) {
	tests := []struct {
		cond   mips.Condition
		branch string
		prefix string
	}{
		{mips.LessEqual, "BGT", "LessEqual_"},
		{mips.NotEqual, "BEQ", "NotEqual_"},
		{mips.Equal, "BNE", "Equal_"},
		{mips.GreaterEqual, "BLT", "GreaterEqual_"},
		{mips.GreaterThan, "BLE", "GreaterThan_"},
	}

	for _, tt := range tests {
		t.Run(tt.cond.String(), func(t *testing.T) {
			r := require.New(t)
			renderer := mips.NewRenderer()

			inst := mips.Compare{Cond: tt.cond, Dst: reg(mips.T2), Left: reg(mips.T2), Right: reg(mips.T3)}

			seen := make(map[string]struct{})
			for i := 0; i < 3; i++ {
				got, err := renderer.Render(inst)
				r.NoError(err)

				lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
				r.Len(lines, 3)

				label := tt.prefix + []string{"0", "1", "2"}[i]
				r.Equal(tt.branch+" $t2, $t3, "+label, lines[0])
				r.Equal("ADDI $t2, $zero, 1", lines[1])
				r.Equal(label+":", lines[2])

				_, dup := seen[label]
				r.False(dup, "label %s reused", label)
				seen[label] = struct{}{}
			}
		})
	}
}

func TestRender_IndependentCounters(t *testing.T) {
	r := require.New(t)
	renderer := mips.NewRenderer()

	gt := mips.Compare{Cond: mips.GreaterThan, Dst: reg(mips.T0), Left: reg(mips.T0), Right: reg(mips.T1)}
	eq := mips.Compare{Cond: mips.Equal, Dst: reg(mips.T0), Left: reg(mips.T0), Right: reg(mips.T1)}

	out, err := renderer.RenderAll(mips.Snippet{gt, eq, gt, eq})
	r.NoError(err)
	r.Len(out, 4)
	r.Contains(out[0], "GreaterThan_0:")
	r.Contains(out[1], "Equal_0:")
	r.Contains(out[2], "GreaterThan_1:")
	r.Contains(out[3], "Equal_1:")
}

func TestRender_InvalidRegister(t *testing.T) {
	r := require.New(t)

	_, err := mips.NewRenderer().Render(mips.LoadImmediate{
		Dst:   reg(mips.RegisterNone),
		Value: mips.ImmediateOperand(1),
	})
	r.Error(err)
}

func TestRenderTo(t *testing.T) {
	r := require.New(t)

	var s mips.Snippet
	s.Raw(".text\n")
	s.LoadImmediate(mips.T1, 7)
	s.LoadAddress(mips.T0, "x")
	s.Store(mips.T1, mips.T0)

	var buf bytes.Buffer
	n, err := mips.NewRenderer().RenderTo(&buf, s)
	r.NoError(err)
	r.Equal(int64(buf.Len()), n)
	r.Equal(".text\nLI $t1, 7\nLA $t0, x\nSW $t1, 0($t0)\n", buf.String())
}

func TestRegister_Cycle(t *testing.T) {
	r := require.New(t)

	reg := mips.T0
	for i := 0; i < mips.NumTemporaries; i++ {
		r.True(reg.Valid())
		r.Equal("$t"+string(rune('0'+i)), reg.String())
		reg = reg.Next()
	}

	r.Equal(mips.RegisterNone, reg)
	r.False(reg.Valid())
	r.Equal(mips.RegisterNone, reg.Next())
}

func TestSnippet_Last(t *testing.T) {
	r := require.New(t)

	var s mips.Snippet
	r.True(s.Empty())
	r.Nil(s.Last())

	s.LoadAddress(mips.T4, "flag")
	r.Equal(1, s.Len())
	r.Equal(mips.LoadAddress{Dst: reg(mips.T4), Addr: mips.MemoryOperand("flag")}, s.Last())

	s.Dereference(mips.T4)
	r.Equal(mips.Load{Dst: reg(mips.T4), Addr: reg(mips.T4)}, s.Last())
}
