package parser

import (
	"fmt"
	"log/slog"

	"github.com/p-sawicki/cplc/pkg/lexer"
)

// Canonical structural-error messages.
const (
	NoSemicolon       = "Missing semicolon ';'"
	NoColon           = "Missing colon ':'"
	NoClosingBracket  = "No match for opening bracket '('"
	NoCurlyBracket    = "Missing curly bracket '{'"
	NoClosingCurly    = "No match for opening curly bracket '{'"
	NoClosingVertical = "No match for opening of absolute value '|'"
)

// Error is a terminal structural mismatch against the grammar.
type Error struct {
	Msg  string
	Line int
}

func (e *Error) Error() string {
	return fmt.Sprintf("[ERROR] %s at line %d.", e.Msg, e.Line)
}

// Parser is a recursive-descent parser with one token of lookahead. Each
// call to ParseNext yields one top-level statement.
type Parser struct {
	lexer  *lexer.Lexer
	logger *slog.Logger
	peek   lexer.Token
	line   int
}

func New(l *lexer.Lexer, logger *slog.Logger) (*Parser, error) {
	p := &Parser{lexer: l, logger: logger}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	p.line = p.lexer.Line
	token, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.peek = token
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Line: p.line}
}

func (p *Parser) warn(msg string) {
	p.logger.Warn(msg, "line", p.line)
}

// match consumes the current token when it has the expected tag.
func (p *Parser) match(tag lexer.Tag, errMsg string) error {
	if p.peek.Tag != tag {
		return p.errorf("%s", errMsg)
	}
	return p.next()
}

// ParseNext parses one top-level form: a typed variable definition or a
// function definition. It returns nil at end of input.
func (p *Parser) ParseNext() (Statement, error) {
	switch p.peek.Tag {
	case lexer.END:
		return nil, nil
	case lexer.TYPE:
		return p.variableDefinition()
	case lexer.FUN:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.functionDefinition()
	default:
		return nil, p.errorf("Expected variable or function definition")
	}
}

func (p *Parser) variableDefinition() (Statement, error) {
	typ := p.peek
	if err := p.next(); err != nil {
		return nil, err
	}

	if p.peek.Tag != lexer.ID {
		return nil, p.errorf("Expected an identifier")
	}
	name := p.peek
	if err := p.next(); err != nil {
		return nil, err
	}

	if err := p.match(lexer.ASSIGN, "Variable "+name.Text+" was not initialized"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.match(lexer.SEMICOLON, NoSemicolon); err != nil {
		return nil, err
	}

	return &VariableDefinition{
		Target: &Identifier{Token: name, Type: typ.Type},
		Expr:   expr,
	}, nil
}

// functionDefinition parses everything after the 'fun' keyword. A ';' after
// the signature yields a declaration, otherwise a block is required.
func (p *Parser) functionDefinition() (Statement, error) {
	name := p.peek
	if err := p.next(); err != nil {
		return nil, err
	}

	if err := p.match(lexer.COLON, NoColon); err != nil {
		return nil, err
	}
	if p.peek.Tag != lexer.TYPE {
		return nil, p.errorf("Expected a return type")
	}
	typ := p.peek
	if err := p.next(); err != nil {
		return nil, err
	}

	if err := p.match(lexer.OPEN_BRACKET, "Expected parameter list for function "+name.Text); err != nil {
		return nil, err
	}
	var params []*Identifier
	for p.peek.Tag != lexer.CLOSE_BRACKET {
		if p.peek.Tag == lexer.END {
			return nil, p.errorf("%s", NoClosingBracket)
		}
		paramName := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.match(lexer.COLON, NoColon); err != nil {
			return nil, err
		}
		if p.peek.Tag != lexer.TYPE {
			return nil, p.errorf("Expected a type for parameter %s", paramName.Text)
		}
		params = append(params, &Identifier{Token: paramName, Type: p.peek.Type})
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.peek.Tag == lexer.COMMA {
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.peek.Tag == lexer.CLOSE_BRACKET {
				p.warn("Comma with no parameter after")
			}
		}
	}
	if err := p.next(); err != nil { // ')'
		return nil, err
	}

	decl := FunctionDeclaration{Token: name, ReturnType: typ.Type, Params: params}
	if p.peek.Tag == lexer.SEMICOLON {
		if err := p.next(); err != nil {
			return nil, err
		}
		return &decl, nil
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionDefinition{FunctionDeclaration: decl, Body: body}, nil
}

func (p *Parser) statement() (Statement, error) {
	token := p.peek
	switch p.peek.Tag {
	case lexer.RETURN:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.match(lexer.SEMICOLON, NoSemicolon); err != nil {
			return nil, err
		}
		return &ReturnStatement{Token: token, Expr: expr}, nil
	case lexer.IF, lexer.WHILE:
		return p.conditionalStatement()
	case lexer.TYPE:
		return p.variableDefinition()
	case lexer.ID:
		return p.assignment()
	default:
		return nil, p.errorf("Expected a statement")
	}
}

func (p *Parser) conditionalStatement() (Statement, error) {
	isIf := p.peek.Tag == lexer.IF
	token := p.peek
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.match(lexer.OPEN_BRACKET, "Expected a conditional in brackets"); err != nil {
		return nil, err
	}
	condition, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if err := p.match(lexer.CLOSE_BRACKET, NoClosingBracket); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if !isIf {
		return &WhileStatement{Token: token, Condition: condition, Body: body}, nil
	}

	var elseBlock Statement
	if p.peek.Tag == lexer.ELSE {
		if err := p.next(); err != nil {
			return nil, err
		}
		elseBlock, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return &IfStatement{Token: token, Condition: condition, Then: body, Else: elseBlock}, nil
}

// block parses either a braced statement sequence or a single statement.
func (p *Parser) block() (Statement, error) {
	if p.peek.Tag != lexer.OPEN_CURLY {
		return p.statement()
	}

	token := p.peek
	if err := p.next(); err != nil { // '{'
		return nil, err
	}
	var stmts []Statement
	for p.peek.Tag != lexer.CLOSE_CURLY {
		if p.peek.Tag == lexer.END {
			return nil, p.errorf("%s", NoClosingCurly)
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.next(); err != nil { // '}'
		return nil, err
	}
	return &Sequence{Token: token, Statements: stmts}, nil
}

func (p *Parser) assignment() (Statement, error) {
	name := &Identifier{Token: p.peek, Type: lexer.NONE}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.match(lexer.ASSIGN, "Expected an assignment"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.match(lexer.SEMICOLON, NoSemicolon); err != nil {
		return nil, err
	}
	return &Assignment{Target: name, Expr: expr}, nil
}

func (p *Parser) expression() (Expression, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek.Tag == lexer.PLUS || p.peek.Tag == lexer.MINUS {
		op := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOperation{Token: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) term() (Expression, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.peek.Tag == lexer.TIMES || p.peek.Tag == lexer.DIVIDE {
		op := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOperation{Token: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) factor() (Expression, error) {
	if p.peek.Tag == lexer.MINUS || p.peek.Tag == lexer.PLUS {
		op := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryOperation{Token: op, Inner: inner}, nil
	}
	return p.unary()
}

func (p *Parser) unary() (Expression, error) {
	token := p.peek
	var expr Expression
	var err error
	switch token.Tag {
	case lexer.INT:
		if err = p.next(); err != nil {
			return nil, err
		}
		expr = &Constant{Token: token, Type: lexer.TypeInt}
	case lexer.DOUBLE:
		if err = p.next(); err != nil {
			return nil, err
		}
		expr = &Constant{Token: token, Type: lexer.TypeDouble}
	case lexer.STRING:
		if err = p.next(); err != nil {
			return nil, err
		}
		expr = &Constant{Token: token, Type: lexer.TypeString}
	case lexer.ID, lexer.I, lexer.RE, lexer.IM:
		expr, err = p.functionCall()
		if err != nil {
			return nil, err
		}
	case lexer.OPEN_BRACKET:
		if err = p.next(); err != nil {
			return nil, err
		}
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
		if err = p.match(lexer.CLOSE_BRACKET, NoClosingBracket); err != nil {
			return nil, err
		}
	case lexer.VERTICAL:
		if err = p.next(); err != nil {
			return nil, err
		}
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
		if err = p.match(lexer.VERTICAL, NoClosingVertical); err != nil {
			return nil, err
		}
		expr = &AbsoluteValue{Token: token, Inner: expr}
	default:
		return nil, p.errorf("Unexpected syntax")
	}

	if p.peek.Tag == lexer.I {
		expr = &Complex{Token: p.peek, Imaginary: expr}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// functionCall parses an identifier followed by an optional argument list.
// Without brackets the result is a plain identifier reference.
func (p *Parser) functionCall() (Expression, error) {
	name := p.peek
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.peek.Tag != lexer.OPEN_BRACKET {
		return &Identifier{Token: name, Type: lexer.NONE}, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	var args []Expression
	for p.peek.Tag != lexer.CLOSE_BRACKET {
		if p.peek.Tag == lexer.END {
			return nil, p.errorf("%s", NoClosingBracket)
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek.Tag == lexer.COMMA {
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.peek.Tag == lexer.CLOSE_BRACKET {
				p.warn("Comma with no argument after in call to " + name.Text)
			}
		}
	}
	if err := p.next(); err != nil { // ')'
		return nil, err
	}
	return &FunctionCall{Token: name, Args: args}, nil
}

func (p *Parser) conditional() (Expression, error) {
	lhs, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	for p.peek.Tag == lexer.OR {
		op := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		lhs = &Disjunction{Token: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) conjunction() (Expression, error) {
	lhs, err := p.negation()
	if err != nil {
		return nil, err
	}
	for p.peek.Tag == lexer.AND {
		op := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.negation()
		if err != nil {
			return nil, err
		}
		lhs = &Conjunction{Token: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) negation() (Expression, error) {
	if p.peek.Tag == lexer.NOT {
		op := p.peek
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.relation()
		if err != nil {
			return nil, err
		}
		return &Negation{Token: op, Inner: inner}, nil
	}
	return p.relation()
}

// relation parses either a parenthesized conditional or expr RELOP expr.
// A '(' here always re-enters the conditional sublanguage, so arithmetic
// parentheses cannot open a relation.
func (p *Parser) relation() (Expression, error) {
	if p.peek.Tag == lexer.OPEN_BRACKET {
		if err := p.next(); err != nil {
			return nil, err
		}
		inside, err := p.conditional()
		if err != nil {
			return nil, err
		}
		if err := p.match(lexer.CLOSE_BRACKET, NoClosingBracket); err != nil {
			return nil, err
		}
		return inside, nil
	}
	lhs, err := p.expression()
	if err != nil {
		return nil, err
	}
	op := p.peek
	switch op.Tag {
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GE, lexer.GT:
	default:
		return nil, p.errorf("Expected a relational operator")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	rhs, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &Relation{Token: op, LHS: lhs, RHS: rhs}, nil
}
