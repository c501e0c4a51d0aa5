package compiler

import (
	"errors"
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
	"github.com/rhino1998/mipsc/pkg/compiler/operators"
	"github.com/rhino1998/mipsc/pkg/parser"
)

func fileError(filename string, err error) error {
	var posError parser.PositionError
	if !errors.As(err, &posError) {
		return FileError{File: filename, Err: err}
	}

	return err
}

func (c *Compiler) compileFile(prog *Program, file *parser.Program) error {
	errs := newErrorSet()

	for _, stmt := range file.Statements {
		s, err := c.compileStatement(prog, stmt)
		if err != nil {
			errs.Add(err)
			continue
		}

		prog.root.Statements = append(prog.root.Statements, s)
	}

	return errs.Defer(nil)
}

func kindFromKeyword(keyword string) (kinds.Kind, error) {
	switch keyword {
	case "int":
		return kinds.Integer, nil
	case "bool":
		return kinds.Boolean, nil
	default:
		return kinds.None, fmt.Errorf("unknown type %q", keyword)
	}
}

func (c *Compiler) compileBlock(prog *Program, block parser.BlockStatement) (*Block, error) {
	errs := newErrorSet()

	b := &Block{Position: block.Position}
	for _, stmt := range block.Body {
		s, err := c.compileStatement(prog, stmt)
		if err != nil {
			errs.Add(err)
			continue
		}

		b.Statements = append(b.Statements, s)
	}

	return b, errs.Defer(nil)
}

func (c *Compiler) compileStatement(prog *Program, stmt parser.Statement) (Statement, error) {
	switch stmt := stmt.(type) {
	case parser.VarDeclaration:
		kind, err := kindFromKeyword(stmt.Keyword)
		if err != nil {
			return nil, stmt.WrapError(err)
		}

		decl := &DeclarationStatement{
			Kind:     kind,
			Name:     stmt.Name.Name,
			Position: stmt.Position,
		}

		if stmt.Init != nil {
			decl.Expression, err = c.compileExpression(prog, stmt.Init)
			if err != nil {
				return nil, err
			}
		}

		if !prog.symbols.Add(decl.Name, kind) {
			return nil, stmt.Name.WrapError(DuplicateDeclarationError{Name: decl.Name})
		}

		return decl, nil
	case parser.AssignmentStatement:
		right, err := c.compileExpression(prog, stmt.Right)
		if err != nil {
			return nil, err
		}

		return &AssignmentStatement{
			Left:     c.compileIdentifier(prog, stmt.Left),
			Right:    right,
			Position: stmt.Position,
		}, nil
	case parser.ExprStatement:
		expr, err := c.compileExpression(prog, stmt.Expr)
		if err != nil {
			return nil, err
		}

		return &ExpressionStatement{
			Expression: expr,
			Position:   stmt.Position,
		}, nil
	case parser.BlockStatement:
		return c.compileBlock(prog, stmt)
	case parser.IfStatement:
		cond, err := c.compileExpression(prog, stmt.Condition)
		if err != nil {
			return nil, err
		}

		body, err := c.compileBlock(prog, stmt.Body)
		if err != nil {
			return nil, err
		}

		s := &IfStatement{
			Condition: cond,
			Body:      body,
			Position:  stmt.Position,
		}

		if stmt.Else != nil {
			s.Else, err = c.compileBlock(prog, *stmt.Else)
			if err != nil {
				return nil, err
			}
		}

		return s, nil
	case parser.WhileStatement:
		cond, err := c.compileExpression(prog, stmt.Condition)
		if err != nil {
			return nil, err
		}

		body, err := c.compileBlock(prog, stmt.Body)
		if err != nil {
			return nil, err
		}

		return &WhileStatement{
			Condition: cond,
			Body:      body,
			Position:  stmt.Position,
		}, nil
	default:
		return nil, stmt.Pos().WrapError(fmt.Errorf("unrecognized statement type: %T", stmt))
	}
}

func (c *Compiler) compileIdentifier(prog *Program, id parser.Identifier) *Identifier {
	ident := &Identifier{
		Name:     id.Name,
		Position: id.Position,
	}

	prog.references = append(prog.references, ident)

	return ident
}

func (c *Compiler) compileExpression(prog *Program, expr parser.Expr) (Expression, error) {
	switch expr := expr.(type) {
	case parser.IntegerLiteral:
		return &IntegerLiteral{Value: expr.Value, Position: expr.Position}, nil
	case parser.BooleanLiteral:
		return &BooleanLiteral{Value: expr.Value, Position: expr.Position}, nil
	case parser.Identifier:
		return c.compileIdentifier(prog, expr), nil
	case parser.BinaryExpr:
		op, err := operators.Parse(string(expr.Operator))
		if err != nil {
			return nil, expr.WrapError(err)
		}

		left, err := c.compileExpression(prog, expr.Left)
		if err != nil {
			return nil, err
		}

		right, err := c.compileExpression(prog, expr.Right)
		if err != nil {
			return nil, err
		}

		return &BinaryExpression{
			Left:     left,
			Operator: op,
			Right:    right,
			Position: expr.Position,
		}, nil
	default:
		return nil, expr.Pos().WrapError(fmt.Errorf("unrecognized expression type: %T", expr))
	}
}

// checkReferences reports identifiers that name no declaration. Storage is
// static, so a use may precede its declaration.
func (c *Compiler) checkReferences(prog *Program) error {
	errs := newErrorSet()

	for _, ref := range prog.references {
		if prog.symbols.Get(ref.Name) != kinds.None {
			continue
		}

		if c.Config.Strict {
			errs.Add(ref.WrapError(UndeclaredIdentifierError{Name: ref.Name}))
			continue
		}

		c.logger.Warn("undeclared identifier",
			"name", ref.Name,
			"position", ref.Location(),
		)
	}

	return errs.Defer(nil)
}
