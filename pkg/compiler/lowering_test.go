package compiler_test

import (
	"testing"

	"github.com/rhino1998/mipsc/pkg/compiler"
	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
	"github.com/rhino1998/mipsc/pkg/compiler/operators"
	"github.com/stretchr/testify/require"
)

func rightNested(depth int) compiler.Expression {
	if depth == 0 {
		return &compiler.IntegerLiteral{Value: 1}
	}

	return &compiler.BinaryExpression{
		Left:     &compiler.IntegerLiteral{Value: int32(depth)},
		Operator: operators.Addition,
		Right:    rightNested(depth - 1),
	}
}

func render(t *testing.T, code mips.Snippet) []string {
	t.Helper()

	frags, err := mips.NewRenderer().RenderAll(code)
	require.NoError(t, err)

	return frags
}

func TestLowering_RegisterCycle(t *testing.T) {
	r := require.New(t)

	l := compiler.NewLowering(compiler.NewSymbolTable())

	res, err := rightNested(9).Lower(l, mips.T0)
	r.NoError(err)
	r.Equal(compiler.ResultValue, res)

	var last mips.Register
	for _, inst := range l.Code {
		if li, ok := inst.(mips.LoadImmediate); ok {
			last, _ = li.Dst.Register()
		}
	}
	r.Equal(mips.T9, last)

	_, err = rightNested(10).Lower(compiler.NewLowering(compiler.NewSymbolTable()), mips.T0)
	r.ErrorIs(err, compiler.ErrRegisterPoolExhausted)

	_, err = rightNested(1).Lower(compiler.NewLowering(compiler.NewSymbolTable()), mips.T9)
	r.ErrorIs(err, compiler.ErrRegisterPoolExhausted)

	_, err = (&compiler.IntegerLiteral{Value: 1}).Lower(compiler.NewLowering(compiler.NewSymbolTable()), mips.RegisterNone)
	r.ErrorIs(err, compiler.ErrRegisterPoolExhausted)
}

func TestLowering_Identifier(t *testing.T) {
	r := require.New(t)

	symbols := compiler.NewSymbolTable()
	r.True(symbols.Add("x", kinds.Integer))

	l := compiler.NewLowering(symbols)
	id := &compiler.Identifier{Name: "x"}

	res, err := id.Lower(l, mips.T4)
	r.NoError(err)
	r.Equal(compiler.ResultAddress, res)
	r.Equal([]string{"LA $t4, x\n"}, render(t, l.Code))
	r.Equal(kinds.Integer, id.ResultType(symbols))
	r.Equal(kinds.None, (&compiler.Identifier{Name: "y"}).ResultType(symbols))
}

func TestLowering_ResultTypes(t *testing.T) {
	r := require.New(t)

	symbols := compiler.NewSymbolTable()
	symbols.Add("b", kinds.Boolean)

	cmp := &compiler.BinaryExpression{
		Left:     &compiler.IntegerLiteral{Value: 1},
		Operator: operators.LessThan,
		Right:    &compiler.IntegerLiteral{Value: 2},
	}
	sum := &compiler.BinaryExpression{
		Left:     &compiler.IntegerLiteral{Value: 1},
		Operator: operators.Addition,
		Right:    &compiler.IntegerLiteral{Value: 2},
	}

	r.Equal(kinds.Boolean, cmp.ResultType(symbols))
	r.Equal(kinds.Integer, sum.ResultType(symbols))
	r.Equal(kinds.Boolean, (&compiler.BooleanLiteral{Value: true}).ResultType(symbols))
	r.Equal(kinds.Boolean, (&compiler.AssignmentStatement{Left: &compiler.Identifier{Name: "b"}, Right: sum}).ResultType(symbols))
	r.Equal(kinds.None, (&compiler.AssignmentStatement{Left: &compiler.Identifier{Name: "nope"}, Right: sum}).ResultType(symbols))
	r.Equal(kinds.None, (&compiler.Block{}).ResultType(symbols))
}

func TestLowering_UndeclaredAssignment(t *testing.T) {
	r := require.New(t)

	l := compiler.NewLowering(compiler.NewSymbolTable())

	stmt := &compiler.AssignmentStatement{
		Left:  &compiler.Identifier{Name: "ghost"},
		Right: &compiler.BooleanLiteral{Value: true},
	}

	r.NoError(stmt.Lower(l))
	r.Equal([]string{"LI $t1, 1\n", "LA $t0, ghost\n", "SW $t1, 0($t0)\n"}, render(t, l.Code))
}

func TestLowering_PrologueOnce(t *testing.T) {
	r := require.New(t)

	symbols := compiler.NewSymbolTable()
	symbols.Add("a", kinds.Integer)
	symbols.Add("b", kinds.Boolean)

	inner := &compiler.Block{Statements: []compiler.Statement{
		&compiler.AssignmentStatement{Left: &compiler.Identifier{Name: "a"}, Right: &compiler.IntegerLiteral{Value: 3}},
	}}
	root := &compiler.Block{Statements: []compiler.Statement{inner, &compiler.Block{}}}

	l := compiler.NewLowering(symbols)
	r.NoError(root.Lower(l))

	r.Equal([]string{
		".data\n",
		"a: .word 0\n",
		"b: .word 0\n",
		".text\n",
		"LI $t1, 3\n",
		"LA $t0, a\n",
		"SW $t1, 0($t0)\n",
	}, render(t, l.Code))
}

func TestLowering_Labels(t *testing.T) {
	r := require.New(t)

	cond := &compiler.BooleanLiteral{Value: true}
	loop := &compiler.WhileStatement{
		Condition: cond,
		Body: &compiler.Block{Statements: []compiler.Statement{
			&compiler.IfStatement{Condition: cond, Body: &compiler.Block{}},
			&compiler.IfStatement{Condition: cond, Body: &compiler.Block{}, Else: &compiler.Block{}},
		}},
	}
	root := &compiler.Block{Statements: []compiler.Statement{
		loop,
		&compiler.WhileStatement{Condition: cond, Body: &compiler.Block{}},
	}}

	l := compiler.NewLowering(compiler.NewSymbolTable())
	r.NoError(root.Lower(l))

	var labels []mips.Label
	for _, inst := range l.Code {
		if def, ok := inst.(mips.LabelDef); ok {
			labels = append(labels, def.Label)
		}
	}

	r.Equal([]mips.Label{
		"WhileLoop_Start_0",
		"IfThenElse_End_0",
		"IfThenElse_Failure_1",
		"IfThenElse_End_1",
		"WhileLoop_End_0",
		"WhileLoop_Start_1",
		"WhileLoop_End_1",
	}, labels)

	ifs, loops := l.Labels().Allocated()
	r.Equal(2, ifs)
	r.Equal(2, loops)
}

func TestLowering_JumpOverElse(t *testing.T) {
	r := require.New(t)

	stmt := &compiler.IfStatement{
		Condition: &compiler.BooleanLiteral{Value: false},
		Body:      &compiler.Block{},
		Else:      &compiler.Block{},
	}

	l := compiler.NewLowering(compiler.NewSymbolTable())
	l.Code.Raw(".text\n")
	l.JumpOverElse = true
	r.NoError(stmt.Lower(l))

	r.Equal([]string{
		".text\n",
		"LI $t0, 0\n",
		"BEQ $t0, 0, IfThenElse_Failure_0\n",
		"J IfThenElse_End_0\n",
		"IfThenElse_Failure_0:\n",
		"IfThenElse_End_0:\n",
	}, render(t, l.Code))
}

func TestLowering_StrictComparisons(t *testing.T) {
	tests := []struct {
		op   operators.Operator
		want []string
	}{
		{
			op:   operators.LessThan,
			want: []string{"LI $t2, 1\n", "LI $t3, 2\n", "SLT $t2, $t2, $t3\n"},
		},
		{
			op: operators.GreaterThanOrEqual,
			want: []string{
				"LI $t2, 1\n",
				"LI $t3, 2\n",
				"LI $t4, 0\n",
				"BLT $t2, $t3, GreaterEqual_0\nADDI $t4, $zero, 1\nGreaterEqual_0:\n",
				"ADDI $t2, $t4, 0\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			r := require.New(t)

			l := compiler.NewLowering(compiler.NewSymbolTable())
			l.StrictComparisons = true

			expr := &compiler.BinaryExpression{
				Left:     &compiler.IntegerLiteral{Value: 1},
				Operator: tt.op,
				Right:    &compiler.IntegerLiteral{Value: 2},
			}

			_, err := expr.Lower(l, mips.T2)
			r.NoError(err)
			r.Equal(tt.want, render(t, l.Code))
		})
	}

	r := require.New(t)

	l := compiler.NewLowering(compiler.NewSymbolTable())
	l.StrictComparisons = true

	expr := &compiler.BinaryExpression{
		Left:     &compiler.IntegerLiteral{Value: 1},
		Operator: operators.Equal,
		Right:    &compiler.IntegerLiteral{Value: 2},
	}

	_, err := expr.Lower(l, mips.T8)
	r.ErrorIs(err, compiler.ErrRegisterPoolExhausted)
}
