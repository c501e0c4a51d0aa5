package spim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rhino1998/mipsc/pkg/compiler"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
)

var (
	ErrStepLimit    = errors.New("step limit exceeded")
	ErrDivideByZero = errors.New("integer division by zero")
)

const (
	// DefaultDataBase is where SPIM and MARS place the .data segment.
	DefaultDataBase uint32 = 0x10010000
	DefaultMaxSteps        = 1 << 20

	WordSize = 4
)

type RuntimeConfig struct {
	// MaxSteps bounds the number of executed instructions. Zero selects
	// DefaultMaxSteps.
	MaxSteps int

	// DataBase is the address of the first static word. Zero selects
	// DefaultDataBase.
	DataBase uint32

	// Trace, if set, receives every executed instruction at debug level.
	Trace *slog.Logger
}

func (c *RuntimeConfig) validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must not be negative, got %d", c.MaxSteps)
	}

	if c.MaxSteps == 0 {
		c.MaxSteps = DefaultMaxSteps
	}

	if c.DataBase == 0 {
		c.DataBase = DefaultDataBase
	}

	if c.DataBase%WordSize != 0 {
		return fmt.Errorf("data base 0x%08x is not word aligned", c.DataBase)
	}

	return nil
}

// Runtime executes the instruction sequence of a compiled program the way
// an assembler would run its rendered text: ten temporaries, HI and LO, and
// one zero-initialized word of static data per symbol.
type Runtime struct {
	config RuntimeConfig

	code    mips.Snippet
	labels  map[mips.Label]int
	symbols []compiler.Symbol
	addrs   map[string]uint32

	pc        int
	steps     int
	registers [mips.NumTemporaries]mips.Int
	hi, lo    mips.Int
	memory    map[uint32]mips.Int
}

func NewRuntime(prog *compiler.Program, config RuntimeConfig) (*Runtime, error) {
	err := config.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}

	r := &Runtime{
		config:  config,
		code:    prog.Instructions(),
		labels:  make(map[mips.Label]int),
		symbols: prog.Symbols().All(),
		addrs:   make(map[string]uint32),
		memory:  make(map[uint32]mips.Int),
	}

	for i, sym := range r.symbols {
		addr := config.DataBase + uint32(i)*WordSize
		r.addrs[sym.Name] = addr
		r.memory[addr] = 0
	}

	for i, inst := range r.code {
		def, ok := inst.(mips.LabelDef)
		if !ok {
			continue
		}

		if _, ok := r.labels[def.Label]; ok {
			return nil, fmt.Errorf("label %q defined more than once", def.Label)
		}

		r.labels[def.Label] = i
	}

	for i, inst := range r.code {
		err := r.resolve(inst)
		if err != nil {
			return nil, fmt.Errorf("instruction %d (%v): %w", i, inst, err)
		}
	}

	return r, nil
}

func (r *Runtime) resolve(inst mips.Instruction) error {
	err := mips.Validate(inst)
	if err != nil {
		return err
	}

	var target mips.Label
	switch inst := inst.(type) {
	case mips.LoadAddress:
		name, _ := inst.Addr.Memory()
		if _, ok := r.addrs[name]; !ok {
			return fmt.Errorf("undefined symbol %q", name)
		}
		return nil
	case mips.Jump:
		target = inst.Target
	case mips.Branch:
		target = inst.Target
	default:
		return nil
	}

	if _, ok := r.labels[target]; !ok {
		return fmt.Errorf("undefined label %q", target)
	}

	return nil
}

func (r *Runtime) Steps() int {
	return r.steps
}

func (r *Runtime) Register(reg mips.Register) mips.Int {
	if !reg.Valid() {
		return 0
	}

	return r.registers[reg]
}

func (r *Runtime) HI() mips.Int {
	return r.hi
}

func (r *Runtime) LO() mips.Int {
	return r.lo
}

// Address returns the static address assigned to name.
func (r *Runtime) Address(name string) (uint32, bool) {
	addr, ok := r.addrs[name]
	return addr, ok
}

// Load returns the word stored for name.
func (r *Runtime) Load(name string) (mips.Int, bool) {
	addr, ok := r.addrs[name]
	if !ok {
		return 0, false
	}

	return r.memory[addr], true
}

// Memory snapshots every symbol's current value.
func (r *Runtime) Memory() map[string]mips.Int {
	mem := make(map[string]mips.Int, len(r.symbols))
	for _, sym := range r.symbols {
		mem[sym.Name] = r.memory[r.addrs[sym.Name]]
	}

	return mem
}

func (r *Runtime) Symbols() []compiler.Symbol {
	return r.symbols
}

// Run executes from the current position until the sequence ends.
func (r *Runtime) Run(ctx context.Context) error {
	for r.pc < len(r.code) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if r.steps >= r.config.MaxSteps {
			return fmt.Errorf("after %d instructions: %w", r.steps, ErrStepLimit)
		}

		pc := r.pc
		inst := r.code[pc]

		if r.config.Trace != nil {
			r.config.Trace.Debug("step", slog.Int("pc", pc), slog.Any("inst", inst))
		}

		r.pc++
		r.steps++

		err := r.exec(inst)
		if err != nil {
			return fmt.Errorf("instruction %d (%v): %w", pc, inst, err)
		}
	}

	return nil
}

func (r *Runtime) load(op mips.Operand) (mips.Int, error) {
	switch op.Kind {
	case mips.OperandKindRegister:
		reg, _ := op.Register()
		return r.registers[reg], nil
	case mips.OperandKindImmediate:
		v, _ := op.Immediate()
		return v, nil
	default:
		return 0, fmt.Errorf("cannot read operand %v of kind %v", op, op.Kind)
	}
}

func (r *Runtime) store(op mips.Operand, v mips.Int) error {
	reg, ok := op.Register()
	if !ok {
		return fmt.Errorf("cannot write operand %v of kind %v", op, op.Kind)
	}

	r.registers[reg] = v

	return nil
}

func (r *Runtime) word(op mips.Operand) (uint32, error) {
	v, err := r.load(op)
	if err != nil {
		return 0, err
	}

	addr := uint32(v)
	if _, ok := r.memory[addr]; !ok {
		return 0, fmt.Errorf("unmapped address 0x%08x", addr)
	}

	return addr, nil
}

func (r *Runtime) operands(left, right mips.Operand) (mips.Int, mips.Int, error) {
	lv, err := r.load(left)
	if err != nil {
		return 0, 0, err
	}

	rv, err := r.load(right)
	if err != nil {
		return 0, 0, err
	}

	return lv, rv, nil
}

func boolInt(b bool) mips.Int {
	if b {
		return 1
	}

	return 0
}

func (r *Runtime) exec(inst mips.Instruction) error {
	switch inst := inst.(type) {
	case mips.Raw, mips.LabelDef:
	case mips.Assign:
		v, err := r.load(inst.Src)
		if err != nil {
			return err
		}

		return r.store(inst.Dst, v)
	case mips.LoadImmediate:
		v, err := r.load(inst.Value)
		if err != nil {
			return err
		}

		return r.store(inst.Dst, v)
	case mips.LoadAddress:
		name, _ := inst.Addr.Memory()
		return r.store(inst.Dst, mips.Int(int32(r.addrs[name])))
	case mips.Load:
		addr, err := r.word(inst.Addr)
		if err != nil {
			return err
		}

		return r.store(inst.Dst, r.memory[addr])
	case mips.Store:
		addr, err := r.word(inst.Addr)
		if err != nil {
			return err
		}

		v, err := r.load(inst.Src)
		if err != nil {
			return err
		}

		r.memory[addr] = v
	case mips.Jump:
		r.pc = r.labels[inst.Target]
	case mips.Branch:
		lv, rv, err := r.operands(inst.Left, inst.Right)
		if err != nil {
			return err
		}

		if inst.Cond.Holds(lv, rv) {
			r.pc = r.labels[inst.Target]
		}
	case mips.Compare:
		lv, rv, err := r.operands(inst.Left, inst.Right)
		if err != nil {
			return err
		}

		if !inst.Cond.Synthesized() {
			return r.store(inst.Dst, boolInt(inst.Cond.Holds(lv, rv)))
		}

		// The rendered form branches around "set 1" and never clears the
		// destination.
		if !inst.Cond.Inverse().Holds(lv, rv) {
			return r.store(inst.Dst, 1)
		}
	case mips.Logic:
		lv, rv, err := r.operands(inst.Left, inst.Right)
		if err != nil {
			return err
		}

		switch inst.Op {
		case mips.And:
			return r.store(inst.Dst, lv&rv)
		case mips.Or:
			return r.store(inst.Dst, lv|rv)
		default:
			return fmt.Errorf("unhandled logic operator %v", inst.Op.Mnemonic())
		}
	case mips.Arith:
		lv, rv, err := r.operands(inst.Left, inst.Right)
		if err != nil {
			return err
		}

		return r.arith(inst, lv, rv)
	default:
		return fmt.Errorf("unhandled instruction type %T", inst)
	}

	return nil
}

func (r *Runtime) arith(inst mips.Arith, lv, rv mips.Int) error {
	switch inst.Op {
	case mips.Add:
		return r.store(inst.Dst, lv+rv)
	case mips.Sub:
		return r.store(inst.Dst, lv-rv)
	case mips.Mul:
		product := int64(lv) * int64(rv)
		r.hi = mips.Int(int32(product >> 32))
		r.lo = mips.Int(int32(product))

		return r.store(inst.Dst, r.lo)
	case mips.Div, mips.Mod:
		if rv == 0 {
			return ErrDivideByZero
		}

		r.lo = lv / rv
		r.hi = lv % rv

		if inst.Op == mips.Mod {
			return r.store(inst.Dst, r.hi)
		}

		return r.store(inst.Dst, r.lo)
	default:
		return fmt.Errorf("unhandled arithmetic operator %v", inst.Op.Mnemonic())
	}
}
