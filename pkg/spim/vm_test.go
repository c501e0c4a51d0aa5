package spim_test

import (
	"context"
	"testing"

	"github.com/rhino1998/mipsc/pkg/compiler"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
	"github.com/rhino1998/mipsc/pkg/spim"
	"github.com/stretchr/testify/require"
)

func TestRuntime(t *testing.T) {
	tests := []struct {
		name   string
		config compiler.Config
		source string
		want   map[string]mips.Int
	}{
		{
			name:   "if greater",
			source: "int x = 1 + 2; if (x > 2) { x = 0; }",
			want:   map[string]mips.Int{"x": 0},
		},
		{
			name:   "while sum",
			source: "int i = 0; int sum; while (i < 3) { sum = sum + i; i = i + 1; }",
			want:   map[string]mips.Int{"i": 3, "sum": 3},
		},
		{
			name:   "arithmetic",
			source: "int a = 7; int b = a * 3 / 2 % 5 - 1; int c = 1 + (2 + (3 + 4)); int m = -7 % 3;",
			want:   map[string]mips.Int{"a": 7, "b": -1, "c": 10, "m": -1},
		},
		{
			name:   "wrapping",
			source: "int big = 2147483647 + 1; int lo = 65536 * 65536;",
			want:   map[string]mips.Int{"big": -2147483648, "lo": 0},
		},
		{
			name:   "false comparison keeps left operand",
			source: "int x = 5; bool b = x == 4;",
			want:   map[string]mips.Int{"x": 5, "b": 5},
		},
		{
			name:   "strict false comparison",
			config: compiler.Config{StrictComparisons: true},
			source: "int x = 5; bool b = x == 4; bool c = x >= 5;",
			want:   map[string]mips.Int{"x": 5, "b": 0, "c": 1},
		},
		{
			name:   "then falls into else",
			source: "int a; if (true) { a = 1; } else { a = 2; }",
			want:   map[string]mips.Int{"a": 2},
		},
		{
			name:   "jump over else",
			config: compiler.Config{JumpOverElse: true},
			source: "int a; if (true) { a = 1; } else { a = 2; }",
			want:   map[string]mips.Int{"a": 1},
		},
		{
			name:   "logic",
			source: "bool t = true && (1 < 2); bool f = false || (2 < 1);",
			want:   map[string]mips.Int{"t": 1, "f": 0},
		},
		{
			name:   "use before declaration",
			source: "y = 4; int y;",
			want:   map[string]mips.Int{"y": 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)

			prog := compile(t, tt.config, tt.source)

			rt, err := spim.NewRuntime(prog, spim.RuntimeConfig{})
			r.NoError(err)

			err = rt.Run(context.Background())
			r.NoError(err)

			r.Equal(tt.want, rt.Memory())
		})
	}
}

func TestRuntime_HiLo(t *testing.T) {
	r := require.New(t)

	prog := compile(t, compiler.Config{}, "int p = 65536 * 65536;")

	rt, err := spim.NewRuntime(prog, spim.RuntimeConfig{})
	r.NoError(err)
	r.NoError(rt.Run(context.Background()))

	r.Equal(mips.Int(1), rt.HI())
	r.Equal(mips.Int(0), rt.LO())
}

func TestRuntime_Addresses(t *testing.T) {
	r := require.New(t)

	prog := compile(t, compiler.Config{}, "int a; int b; bool c;")

	rt, err := spim.NewRuntime(prog, spim.RuntimeConfig{DataBase: 0x1000})
	r.NoError(err)

	for i, name := range []string{"a", "b", "c"} {
		addr, ok := rt.Address(name)
		r.True(ok)
		r.Equal(uint32(0x1000+i*spim.WordSize), addr)
	}

	_, ok := rt.Address("d")
	r.False(ok)

	_, err = spim.NewRuntime(prog, spim.RuntimeConfig{DataBase: 0x1002})
	r.Error(err)
}

func TestRuntime_DivideByZero(t *testing.T) {
	r := require.New(t)

	prog := compile(t, compiler.Config{}, "int z = 0; int q = 1 / z;")

	rt, err := spim.NewRuntime(prog, spim.RuntimeConfig{})
	r.NoError(err)

	err = rt.Run(context.Background())
	r.ErrorIs(err, spim.ErrDivideByZero)
}

func TestRuntime_StepLimit(t *testing.T) {
	r := require.New(t)

	prog := compile(t, compiler.Config{}, "while (true) {}")

	rt, err := spim.NewRuntime(prog, spim.RuntimeConfig{MaxSteps: 100})
	r.NoError(err)

	err = rt.Run(context.Background())
	r.ErrorIs(err, spim.ErrStepLimit)
	r.Equal(100, rt.Steps())
}

func TestRuntime_Canceled(t *testing.T) {
	r := require.New(t)

	prog := compile(t, compiler.Config{}, "while (true) {}")

	rt, err := spim.NewRuntime(prog, spim.RuntimeConfig{})
	r.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = rt.Run(ctx)
	r.ErrorIs(err, context.Canceled)
}

func TestRuntime_UndefinedSymbol(t *testing.T) {
	r := require.New(t)

	prog := compile(t, compiler.Config{}, "int x; y = 1;")

	_, err := spim.NewRuntime(prog, spim.RuntimeConfig{})
	r.ErrorContains(err, `undefined symbol "y"`)
}
