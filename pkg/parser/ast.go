package parser

import (
	"github.com/p-sawicki/cplc/pkg/lexer"
)

// Expression is implemented by every node that produces a value. Every node
// carries the token that produced it so code generation can report lines.
type Expression interface {
	expression()
	Tok() lexer.Token
}

// Statement is implemented by every node generated for its effect.
type Statement interface {
	statement()
	Tok() lexer.Token
}

// Identifier is a reference to a named variable. Type is NONE until the
// name is resolved against the symbol table.
type Identifier struct {
	Token lexer.Token
	Type  lexer.TypeID
}

func (*Identifier) expression()        {}
func (e *Identifier) Tok() lexer.Token { return e.Token }

func (e *Identifier) Name() string { return e.Token.Text }

// Constant is an integer, double or string literal.
type Constant struct {
	Token lexer.Token
	Type  lexer.TypeID
}

func (*Constant) expression()        {}
func (e *Constant) Tok() lexer.Token { return e.Token }

// FunctionCall is name(args). The built-ins Re and Im are encoded here as
// well, distinguished by the token tag.
type FunctionCall struct {
	Token lexer.Token
	Args  []Expression
}

func (*FunctionCall) expression()        {}
func (e *FunctionCall) Tok() lexer.Token { return e.Token }

// AbsoluteValue is |expr|.
type AbsoluteValue struct {
	Token lexer.Token
	Inner Expression
}

func (*AbsoluteValue) expression()        {}
func (e *AbsoluteValue) Tok() lexer.Token { return e.Token }

// Complex wraps an expression that the lexer marked with the imaginary
// unit: the wrapped expression is the imaginary part, the real part is 0.
type Complex struct {
	Token     lexer.Token
	Imaginary Expression
}

func (*Complex) expression()        {}
func (e *Complex) Tok() lexer.Token { return e.Token }

// BinaryOperation is lhs op rhs over + - * /.
type BinaryOperation struct {
	Token lexer.Token
	LHS   Expression
	RHS   Expression
}

func (*BinaryOperation) expression()        {}
func (e *BinaryOperation) Tok() lexer.Token { return e.Token }

// UnaryOperation is a prefix + or - applied to an expression.
type UnaryOperation struct {
	Token lexer.Token
	Inner Expression
}

func (*UnaryOperation) expression()        {}
func (e *UnaryOperation) Tok() lexer.Token { return e.Token }

// Disjunction is lhs or rhs.
type Disjunction struct {
	Token lexer.Token
	LHS   Expression
	RHS   Expression
}

func (*Disjunction) expression()        {}
func (e *Disjunction) Tok() lexer.Token { return e.Token }

// Conjunction is lhs and rhs.
type Conjunction struct {
	Token lexer.Token
	LHS   Expression
	RHS   Expression
}

func (*Conjunction) expression()        {}
func (e *Conjunction) Tok() lexer.Token { return e.Token }

// Negation is not expr.
type Negation struct {
	Token lexer.Token
	Inner Expression
}

func (*Negation) expression()        {}
func (e *Negation) Tok() lexer.Token { return e.Token }

// Relation is lhs relop rhs over == != < <= > >=.
type Relation struct {
	Token lexer.Token
	LHS   Expression
	RHS   Expression
}

func (*Relation) expression()        {}
func (e *Relation) Tok() lexer.Token { return e.Token }

// IfStatement is if (cond) block (else block)?. Else is nil when absent.
type IfStatement struct {
	Token     lexer.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (*IfStatement) statement()         {}
func (s *IfStatement) Tok() lexer.Token { return s.Token }

// WhileStatement is while (cond) block.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      Statement
}

func (*WhileStatement) statement()         {}
func (s *WhileStatement) Tok() lexer.Token { return s.Token }

// ReturnStatement is return expr;.
type ReturnStatement struct {
	Token lexer.Token
	Expr  Expression
}

func (*ReturnStatement) statement()         {}
func (s *ReturnStatement) Tok() lexer.Token { return s.Token }

// Assignment stores expr into an existing binding.
type Assignment struct {
	Target *Identifier
	Expr   Expression
}

func (*Assignment) statement()         {}
func (s *Assignment) Tok() lexer.Token { return s.Target.Token }

// VariableDefinition creates a binding and stores the initializer into it.
type VariableDefinition struct {
	Target *Identifier
	Expr   Expression
}

func (*VariableDefinition) statement()         {}
func (s *VariableDefinition) Tok() lexer.Token { return s.Target.Token }

// FunctionDeclaration is a signature with no body.
type FunctionDeclaration struct {
	Token      lexer.Token
	ReturnType lexer.TypeID
	Params     []*Identifier
}

func (*FunctionDeclaration) statement()         {}
func (s *FunctionDeclaration) Tok() lexer.Token { return s.Token }

// FunctionDefinition is a signature with a body.
type FunctionDefinition struct {
	FunctionDeclaration
	Body Statement
}

func (*FunctionDefinition) statement() {}

// Sequence is a braced block of statements.
type Sequence struct {
	Token      lexer.Token
	Statements []Statement
}

func (*Sequence) statement()         {}
func (s *Sequence) Tok() lexer.Token { return s.Token }
