package interpreter

import (
	"context"
	"errors"
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler"
	"github.com/rhino1998/mipsc/pkg/compiler/operators"
)

var (
	ErrDivideByZero = errors.New("integer division by zero")
	ErrStepLimit    = errors.New("step limit exceeded")
)

const DefaultMaxSteps = 1 << 20

type Config struct {
	// MaxSteps bounds the number of executed statements and loop tests.
	// Zero selects DefaultMaxSteps.
	MaxSteps int
}

// Execute runs prog directly over its tree and returns the final value of
// every variable. Comparisons always yield 0 or 1 and a taken then-branch
// never runs its else-branch.
func Execute(ctx context.Context, prog *compiler.Program, config Config) (map[string]int32, error) {
	if config.MaxSteps < 0 {
		return nil, fmt.Errorf("max steps must not be negative, got %d", config.MaxSteps)
	}

	if config.MaxSteps == 0 {
		config.MaxSteps = DefaultMaxSteps
	}

	state := newState(prog, config)

	err := state.execute(ctx)
	if err != nil {
		return nil, err
	}

	return state.global.Values(), nil
}

type State struct {
	prog   *compiler.Program
	config Config
	global *Scope
	steps  int
}

func newState(prog *compiler.Program, config Config) *State {
	return &State{
		prog:   prog,
		config: config,
		global: newScope(),
	}
}

func (s *State) execute(ctx context.Context) error {
	for _, sym := range s.prog.Symbols().All() {
		err := s.global.Put(sym.Name, sym.Kind)
		if err != nil {
			return err
		}
	}

	return s.executeBlock(ctx, s.prog.Root())
}

func (s *State) step(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if s.steps >= s.config.MaxSteps {
		return fmt.Errorf("after %d steps: %w", s.steps, ErrStepLimit)
	}

	s.steps++

	return nil
}

func (s *State) executeBlock(ctx context.Context, block *compiler.Block) error {
	for _, stmt := range block.Statements {
		err := s.executeStatement(ctx, stmt)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *State) executeStatement(ctx context.Context, stmt compiler.Statement) error {
	err := s.step(ctx)
	if err != nil {
		return err
	}

	switch stmt := stmt.(type) {
	case *compiler.DeclarationStatement:
		if stmt.Expression == nil {
			return nil
		}

		return s.assign(stmt.Name, stmt.Expression, stmt)
	case *compiler.AssignmentStatement:
		return s.assign(stmt.Left.Name, stmt.Right, stmt)
	case *compiler.ExpressionStatement:
		_, err := s.evaluateExpression(stmt.Expression)
		return err
	case *compiler.Block:
		return s.executeBlock(ctx, stmt)
	case *compiler.IfStatement:
		cond, err := s.evaluateExpression(stmt.Condition)
		if err != nil {
			return err
		}

		if cond != 0 {
			return s.executeBlock(ctx, stmt.Body)
		}

		if stmt.Else != nil {
			return s.executeBlock(ctx, stmt.Else)
		}

		return nil
	case *compiler.WhileStatement:
		for {
			cond, err := s.evaluateExpression(stmt.Condition)
			if err != nil {
				return err
			}

			if cond == 0 {
				return nil
			}

			err = s.executeBlock(ctx, stmt.Body)
			if err != nil {
				return err
			}

			err = s.step(ctx)
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unhandled statement type %T", stmt)
	}
}

func (s *State) assign(name string, expr compiler.Expression, node compiler.Node) error {
	val, err := s.evaluateExpression(expr)
	if err != nil {
		return err
	}

	v, ok := s.global.Get(name)
	if !ok {
		return node.WrapError(compiler.UndeclaredIdentifierError{Name: name})
	}

	v.Set(val)

	return nil
}

func boolValue(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

func (s *State) evaluateExpression(expr compiler.Expression) (int32, error) {
	switch expr := expr.(type) {
	case *compiler.IntegerLiteral:
		return expr.Value, nil
	case *compiler.BooleanLiteral:
		return boolValue(expr.Value), nil
	case *compiler.Identifier:
		v, ok := s.global.Get(expr.Name)
		if !ok {
			return 0, expr.WrapError(compiler.UndeclaredIdentifierError{Name: expr.Name})
		}

		return v.Value(), nil
	case *compiler.BinaryExpression:
		left, err := s.evaluateExpression(expr.Left)
		if err != nil {
			return 0, err
		}

		right, err := s.evaluateExpression(expr.Right)
		if err != nil {
			return 0, err
		}

		val, err := evaluateBinary(expr.Operator, left, right)
		if err != nil {
			return 0, expr.WrapError(err)
		}

		return val, nil
	default:
		return 0, fmt.Errorf("unhandled expression type %T", expr)
	}
}

// evaluateBinary applies op with 32-bit wraparound. Both operands are
// always evaluated and the logical operators act bitwise.
func evaluateBinary(op operators.Operator, left, right int32) (int32, error) {
	switch op {
	case operators.Addition:
		return left + right, nil
	case operators.Subtraction:
		return left - right, nil
	case operators.Multiplication:
		return left * right, nil
	case operators.Division:
		if right == 0 {
			return 0, ErrDivideByZero
		}
		return left / right, nil
	case operators.Modulo:
		if right == 0 {
			return 0, ErrDivideByZero
		}
		return left % right, nil
	case operators.Equal:
		return boolValue(left == right), nil
	case operators.NotEqual:
		return boolValue(left != right), nil
	case operators.LessThan:
		return boolValue(left < right), nil
	case operators.LessThanOrEqual:
		return boolValue(left <= right), nil
	case operators.GreaterThan:
		return boolValue(left > right), nil
	case operators.GreaterThanOrEqual:
		return boolValue(left >= right), nil
	case operators.LogicalAnd:
		return left & right, nil
	case operators.LogicalOr:
		return left | right, nil
	default:
		return 0, fmt.Errorf("unhandled binary operator %q", op)
	}
}
