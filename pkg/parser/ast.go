package parser

type Program struct {
	Statements []Statement

	Position
}

type Statement interface {
	statement()
	Pos() Position
}

type Expr interface {
	expr()
	Pos() Position
}

type Identifier struct {
	Name string

	Position
}

func (Identifier) expr() {}

type IntegerLiteral struct {
	Value int32

	Position
}

func (IntegerLiteral) expr() {}

type BooleanLiteral struct {
	Value bool

	Position
}

func (BooleanLiteral) expr() {}

type Operator string

type BinaryExpr struct {
	Left     Expr
	Operator Operator
	Right    Expr

	Position
}

func (BinaryExpr) expr() {}

// VarDeclaration declares Name with the type named by Keyword ("int" or
// "bool"). Init is nil when there is no initializer.
type VarDeclaration struct {
	Keyword string
	Name    Identifier
	Init    Expr

	Position
}

func (VarDeclaration) statement() {}

type AssignmentStatement struct {
	Left  Identifier
	Right Expr

	Position
}

func (AssignmentStatement) statement() {}

type ExprStatement struct {
	Expr Expr

	Position
}

func (ExprStatement) statement() {}

type BlockStatement struct {
	Body []Statement

	Position
}

func (BlockStatement) statement() {}

type IfStatement struct {
	Condition Expr
	Body      BlockStatement
	Else      *BlockStatement

	Position
}

func (IfStatement) statement() {}

type WhileStatement struct {
	Condition Expr
	Body      BlockStatement

	Position
}

func (WhileStatement) statement() {}
