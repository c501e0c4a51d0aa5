package parser

import "fmt"

type TokenType int

const (
	EOF TokenType = iota

	IDENTIFIER
	INTEGER

	// keywords
	INT
	BOOL
	TRUE
	FALSE
	IF
	ELSE
	WHILE

	LBRACE
	RBRACE
	LPAREN
	RPAREN
	SEMICOLON

	ASSIGN
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	AND_LOGICAL
	OR_LOGICAL
	EQUALS
	NOT_EQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
)

var tokenNames = map[TokenType]string{
	EOF:         "EOF",
	IDENTIFIER:  "identifier",
	INTEGER:     "integer",
	INT:         "int",
	BOOL:        "bool",
	TRUE:        "true",
	FALSE:       "false",
	IF:          "if",
	ELSE:        "else",
	WHILE:       "while",
	LBRACE:      "{",
	RBRACE:      "}",
	LPAREN:      "(",
	RPAREN:      ")",
	SEMICOLON:   ";",
	ASSIGN:      "=",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	PERCENT:     "%",
	AND_LOGICAL: "&&",
	OR_LOGICAL:  "||",
	EQUALS:      "==",
	NOT_EQ:      "!=",
	LESS:        "<",
	LESS_EQ:     "<=",
	GREATER:     ">",
	GREATER_EQ:  ">=",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

type Token struct {
	Type   TokenType
	Lexeme string

	Position
}
