package parser

import (
	"fmt"
	"unicode"
)

var keywords = map[string]TokenType{
	"int":   INT,
	"bool":  BOOL,
	"true":  TRUE,
	"false": FALSE,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
}

// Lexer holds the scanning state for a single source file.
type Lexer struct {
	file string
	src  []rune
	pos  int
	line int
	col  int
}

func NewLexer(file, src string) *Lexer {
	return &Lexer{file: file, src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Line: l.line, Column: l.col}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// skipTrivia discards whitespace and comments.
func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		switch {
		case unicode.IsSpace(l.peek()):
			l.advance()
		case l.peek() == '/' && l.peek2() == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case l.peek() == '/' && l.peek2() == '*':
			start := l.position()
			l.advance()
			l.advance()
			for {
				if l.pos >= len(l.src) {
					return start.WrapError(fmt.Errorf("unterminated block comment"))
				}
				if l.peek() == '*' && l.peek2() == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanWhile(pred func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.src) && pred(l.peek()) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Next returns the next token, or an EOF token once the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	err := l.skipTrivia()
	if err != nil {
		return Token{}, err
	}

	pos := l.position()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Position: pos}, nil
	}

	r := l.peek()
	switch {
	case unicode.IsLetter(r) || r == '_':
		lexeme := l.scanWhile(isIdentRune)
		tt := IDENTIFIER
		if kw, ok := keywords[lexeme]; ok {
			tt = kw
		}
		return Token{Type: tt, Lexeme: lexeme, Position: pos}, nil
	case unicode.IsDigit(r):
		lexeme := l.scanWhile(unicode.IsDigit)
		if isIdentRune(l.peek()) {
			return Token{}, pos.WrapError(fmt.Errorf("malformed integer literal %q", lexeme+string(l.peek())))
		}
		return Token{Type: INTEGER, Lexeme: lexeme, Position: pos}, nil
	}

	two := string([]rune{r, l.peek2()})
	var tt TokenType
	switch two {
	case "&&":
		tt = AND_LOGICAL
	case "||":
		tt = OR_LOGICAL
	case "==":
		tt = EQUALS
	case "!=":
		tt = NOT_EQ
	case "<=":
		tt = LESS_EQ
	case ">=":
		tt = GREATER_EQ
	}
	if tt != EOF {
		l.advance()
		l.advance()
		return Token{Type: tt, Lexeme: two, Position: pos}, nil
	}

	switch r {
	case '{':
		tt = LBRACE
	case '}':
		tt = RBRACE
	case '(':
		tt = LPAREN
	case ')':
		tt = RPAREN
	case ';':
		tt = SEMICOLON
	case '=':
		tt = ASSIGN
	case '+':
		tt = PLUS
	case '-':
		tt = MINUS
	case '*':
		tt = STAR
	case '/':
		tt = SLASH
	case '%':
		tt = PERCENT
	case '<':
		tt = LESS
	case '>':
		tt = GREATER
	default:
		return Token{}, pos.WrapError(fmt.Errorf("unexpected character %q", r))
	}

	l.advance()
	return Token{Type: tt, Lexeme: string(r), Position: pos}, nil
}

// Tokenize scans all of src, ending with an EOF token.
func Tokenize(file, src string) ([]Token, error) {
	l := NewLexer(file, src)

	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
