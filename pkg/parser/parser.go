package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser builds a Program from the token stream of one file.
//
// Grammar:
//
//	program        = statement* EOF
//	statement      = varDecl | assignment | ifStmt | whileStmt | block | expression ";"
//	varDecl        = ("int" | "bool") IDENTIFIER ("=" expression)? ";"
//	assignment     = IDENTIFIER "=" expression ";"
//	ifStmt         = "if" "(" expression ")" block ("else" block)?
//	whileStmt      = "while" "(" expression ")" block
//	block          = "{" statement* "}"
//	expression     = logical_or
//	logical_or     = logical_and ("||" logical_and)*
//	logical_and    = equality ("&&" equality)*
//	equality       = relational (("==" | "!=") relational)*
//	relational     = additive (("<" | "<=" | ">" | ">=") additive)*
//	additive       = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = primary (("*" | "/" | "%") primary)*
//	primary        = "-"? INTEGER | "true" | "false" | IDENTIFIER | "(" expression ")"
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// errorf positions an error at tok and quotes the offending source line.
func (p *Parser) errorf(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	snippet := "<source unavailable>"
	lineIdx := tok.Line - 1
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}

	return tok.WrapError(fmt.Errorf("%s\n  |> %s", msg, snippet))
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return Token{Type: EOF}
		}
		return Token{Type: EOF, Position: p.tokens[len(p.tokens)-1].Position}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	return tok, nil
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		matched := false
		for _, op := range ops {
			if tok.Type == op {
				matched = true
				break
			}
		}
		if !matched {
			return expr, nil
		}

		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}

		expr = BinaryExpr{
			Left:     expr,
			Operator: Operator(tok.Lexeme),
			Right:    right,
			Position: expr.Pos(),
		}
	}
}

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (Expr, error) {
	return p.binaryLevel(p.parseLogicalAnd, OR_LOGICAL)
}

func (p *Parser) parseLogicalAnd() (Expr, error) {
	return p.binaryLevel(p.parseEquality, AND_LOGICAL)
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.binaryLevel(p.parseRelational, EQUALS, NOT_EQ)
}

func (p *Parser) parseRelational() (Expr, error) {
	return p.binaryLevel(p.parseAdditive, LESS, LESS_EQ, GREATER, GREATER_EQ)
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, PLUS, MINUS)
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	return p.binaryLevel(p.parsePrimary, STAR, SLASH, PERCENT)
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case MINUS:
		num, err := p.expect(INTEGER)
		if err != nil {
			return nil, err
		}
		return p.integer(tok, "-"+num.Lexeme)
	case INTEGER:
		return p.integer(tok, tok.Lexeme)
	case TRUE, FALSE:
		return BooleanLiteral{Value: tok.Type == TRUE, Position: tok.Position}, nil
	case IDENTIFIER:
		return Identifier{Name: tok.Lexeme, Position: tok.Position}, nil
	case LPAREN:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		_, err = p.expect(RPAREN)
		if err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf(tok, "expected expression, got %s (%q)", tok.Type, tok.Lexeme)
	}
}

func (p *Parser) integer(tok Token, text string) (Expr, error) {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, p.errorf(tok, "integer literal %s does not fit in 32 bits", text)
	}

	return IntegerLiteral{Value: int32(v), Position: tok.Position}, nil
}

func (p *Parser) parseVarDecl() (Statement, error) {
	kw := p.advance()

	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	decl := VarDeclaration{
		Keyword:  kw.Lexeme,
		Name:     Identifier{Name: name.Lexeme, Position: name.Position},
		Position: kw.Position,
	}

	if p.peek().Type == ASSIGN {
		p.advance()
		decl.Init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(SEMICOLON)
	if err != nil {
		return nil, err
	}

	return decl, nil
}

func (p *Parser) parseAssignment() (Statement, error) {
	name := p.advance()
	p.advance() // =

	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(SEMICOLON)
	if err != nil {
		return nil, err
	}

	return AssignmentStatement{
		Left:     Identifier{Name: name.Lexeme, Position: name.Position},
		Right:    right,
		Position: name.Position,
	}, nil
}

func (p *Parser) parseBlock() (BlockStatement, error) {
	open, err := p.expect(LBRACE)
	if err != nil {
		return BlockStatement{}, err
	}

	block := BlockStatement{Position: open.Position}
	for p.peek().Type != RBRACE {
		if p.peek().Type == EOF {
			return BlockStatement{}, p.errorf(p.peek(), "unterminated block opened at %s", open.Location())
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return BlockStatement{}, err
		}
		block.Body = append(block.Body, stmt)
	}
	p.advance()

	return block, nil
}

func (p *Parser) parseCondition() (Expr, error) {
	_, err := p.expect(LPAREN)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(RPAREN)
	if err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *Parser) parseIf() (Statement, error) {
	kw := p.advance()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := IfStatement{
		Condition: cond,
		Body:      body,
		Position:  kw.Position,
	}

	if p.peek().Type == ELSE {
		p.advance()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = &els
	}

	return stmt, nil
}

func (p *Parser) parseWhile() (Statement, error) {
	kw := p.advance()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return WhileStatement{
		Condition: cond,
		Body:      body,
		Position:  kw.Position,
	}, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	tok := p.peek()
	switch tok.Type {
	case INT, BOOL:
		return p.parseVarDecl()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case LBRACE:
		return p.parseBlock()
	case IDENTIFIER:
		if p.peekAt(1).Type == ASSIGN {
			return p.parseAssignment()
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(SEMICOLON)
	if err != nil {
		return nil, err
	}

	return ExprStatement{Expr: expr, Position: tok.Position}, nil
}

// ParseProgram parses tokens up to EOF.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{Position: p.peek().Position}
	for p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

func Parse(file, src string) (*Program, error) {
	tokens, err := Tokenize(file, src)
	if err != nil {
		return nil, err
	}

	return NewParser(tokens, src).ParseProgram()
}

func ParseReader(file string, r io.Reader) (*Program, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	return Parse(file, string(src))
}
