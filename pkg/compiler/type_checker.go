package compiler

import (
	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/operators"
)

// checkProgramTypes reports every kind mismatch in prog. Lowering never
// consults kinds, so this only runs in strict mode. Names without a kind
// are reported by checkReferences and skipped here.
func (c *Compiler) checkProgramTypes(prog *Program) error {
	errs := newErrorSet()

	c.checkStatementTypes(errs, prog.symbols, prog.root)

	return errs.Defer(nil)
}

func expectKind(errs *ErrorSet, node Node, expected, actual kinds.Kind) {
	if expected == kinds.None || actual == kinds.None || expected == actual {
		return
	}

	errs.Add(node.WrapError(TypeMismatchError{Expected: expected, Actual: actual}))
}

func (c *Compiler) checkStatementTypes(errs *ErrorSet, symbols Symbols, stmt Statement) {
	switch stmt := stmt.(type) {
	case *DeclarationStatement:
		if stmt.Expression == nil {
			return
		}

		c.checkExpressionTypes(errs, symbols, stmt.Expression)
		expectKind(errs, stmt.Expression, stmt.Kind, stmt.Expression.ResultType(symbols))
	case *AssignmentStatement:
		c.checkExpressionTypes(errs, symbols, stmt.Right)
		expectKind(errs, stmt.Right, stmt.Left.ResultType(symbols), stmt.Right.ResultType(symbols))
	case *ExpressionStatement:
		c.checkExpressionTypes(errs, symbols, stmt.Expression)
	case *Block:
		for _, s := range stmt.Statements {
			c.checkStatementTypes(errs, symbols, s)
		}
	case *IfStatement:
		c.checkExpressionTypes(errs, symbols, stmt.Condition)
		expectKind(errs, stmt.Condition, kinds.Boolean, stmt.Condition.ResultType(symbols))

		c.checkStatementTypes(errs, symbols, stmt.Body)
		if stmt.Else != nil {
			c.checkStatementTypes(errs, symbols, stmt.Else)
		}
	case *WhileStatement:
		c.checkExpressionTypes(errs, symbols, stmt.Condition)
		expectKind(errs, stmt.Condition, kinds.Boolean, stmt.Condition.ResultType(symbols))

		c.checkStatementTypes(errs, symbols, stmt.Body)
	}
}

func (c *Compiler) checkExpressionTypes(errs *ErrorSet, symbols Symbols, expr Expression) {
	binary, ok := expr.(*BinaryExpression)
	if !ok {
		return
	}

	c.checkExpressionTypes(errs, symbols, binary.Left)
	c.checkExpressionTypes(errs, symbols, binary.Right)

	left := binary.Left.ResultType(symbols)
	right := binary.Right.ResultType(symbols)

	switch {
	case binary.Operator.IsLogical():
		expectKind(errs, binary.Left, kinds.Boolean, left)
		expectKind(errs, binary.Right, kinds.Boolean, right)
	case binary.Operator == operators.Equal, binary.Operator == operators.NotEqual:
		expectKind(errs, binary.Right, left, right)
	default:
		expectKind(errs, binary.Left, kinds.Integer, left)
		expectKind(errs, binary.Right, kinds.Integer, right)
	}
}
