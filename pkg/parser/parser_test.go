package parser_test

import (
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/p-sawicki/cplc/pkg/lexer"
	"github.com/p-sawicki/cplc/pkg/parser"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) (parser.Statement, error) {
	t.Helper()
	l, err := lexer.New(strings.NewReader(input))
	require.NoError(t, err)
	p, err := parser.New(l, slogt.New(t))
	require.NoError(t, err)
	return p.ParseNext()
}

func parseOK(t *testing.T, input string) parser.Statement {
	t.Helper()
	stmt, err := parse(t, input)
	require.NoError(t, err)
	return stmt
}

func TestArithmetic(t *testing.T) {
	stmt := parseOK(t, `fun main : int() {
		int a = -1 + 2 * 3;
		a = (1 - 2) / |3|;
		return 0;
	}`)

	fn, ok := stmt.(*parser.FunctionDefinition)
	require.True(t, ok)
	require.Equal(t, lexer.MAIN, fn.Token.Tag)
	require.Equal(t, lexer.TypeInt, fn.ReturnType)
	require.Empty(t, fn.Params)

	block, ok := fn.Body.(*parser.Sequence)
	require.True(t, ok)
	require.Len(t, block.Statements, 3)

	varDef, ok := block.Statements[0].(*parser.VariableDefinition)
	require.True(t, ok)
	assign, ok := block.Statements[1].(*parser.Assignment)
	require.True(t, ok)
	_, ok = block.Statements[2].(*parser.ReturnStatement)
	require.True(t, ok)

	// -1 + 2 * 3 parses as +(unary-(1), *(2, 3)).
	top, ok := varDef.Expr.(*parser.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, lexer.PLUS, top.Token.Tag)

	left, ok := top.LHS.(*parser.UnaryOperation)
	require.True(t, ok)
	require.Equal(t, lexer.MINUS, left.Token.Tag)
	one, ok := left.Inner.(*parser.Constant)
	require.True(t, ok)
	require.Equal(t, lexer.TypeInt, one.Type)

	right, ok := top.RHS.(*parser.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, lexer.TIMES, right.Token.Tag)

	// (1 - 2) / |3| parses as /(-(1, 2), abs(3)).
	top2, ok := assign.Expr.(*parser.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, lexer.DIVIDE, top2.Token.Tag)

	left2, ok := top2.LHS.(*parser.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, lexer.MINUS, left2.Token.Tag)

	_, ok = top2.RHS.(*parser.AbsoluteValue)
	require.True(t, ok)
}

func TestLogic(t *testing.T) {
	stmt := parseOK(t, `fun main : int () {
		if (1 == 1 and 1 != 0 or not 1 < 0) {
			return 0;
		}
		while (1 <= 1 and not (1 > 0 or 1 >= 0)) {
			return -1;
		}
		return 2;
	}`)

	fn, ok := stmt.(*parser.FunctionDefinition)
	require.True(t, ok)
	block, ok := fn.Body.(*parser.Sequence)
	require.True(t, ok)
	require.Len(t, block.Statements, 3)

	ifStmt, ok := block.Statements[0].(*parser.IfStatement)
	require.True(t, ok)
	whileStmt, ok := block.Statements[1].(*parser.WhileStatement)
	require.True(t, ok)

	// or(and(rel ==, rel !=), not(rel <))
	ifTop, ok := ifStmt.Condition.(*parser.Disjunction)
	require.True(t, ok)
	ifLeft, ok := ifTop.LHS.(*parser.Conjunction)
	require.True(t, ok)
	ll, ok := ifLeft.LHS.(*parser.Relation)
	require.True(t, ok)
	require.Equal(t, lexer.EQ, ll.Token.Tag)
	lr, ok := ifLeft.RHS.(*parser.Relation)
	require.True(t, ok)
	require.Equal(t, lexer.NEQ, lr.Token.Tag)
	ifRight, ok := ifTop.RHS.(*parser.Negation)
	require.True(t, ok)
	neg, ok := ifRight.Inner.(*parser.Relation)
	require.True(t, ok)
	require.Equal(t, lexer.LT, neg.Token.Tag)

	// and(rel <=, not(or(rel >, rel >=)))
	whileTop, ok := whileStmt.Condition.(*parser.Conjunction)
	require.True(t, ok)
	wl, ok := whileTop.LHS.(*parser.Relation)
	require.True(t, ok)
	require.Equal(t, lexer.LE, wl.Token.Tag)
	wr, ok := whileTop.RHS.(*parser.Negation)
	require.True(t, ok)
	inner, ok := wr.Inner.(*parser.Disjunction)
	require.True(t, ok)
	il, ok := inner.LHS.(*parser.Relation)
	require.True(t, ok)
	require.Equal(t, lexer.GT, il.Token.Tag)
	ir, ok := inner.RHS.(*parser.Relation)
	require.True(t, ok)
	require.Equal(t, lexer.GE, ir.Token.Tag)
}

func TestImaginaryWrapping(t *testing.T) {
	stmt := parseOK(t, "complex z = a + 2i;")

	varDef, ok := stmt.(*parser.VariableDefinition)
	require.True(t, ok)
	require.Equal(t, lexer.TypeComplex, varDef.Target.Type)

	// a + 2i parses as +(a, Complex(2)).
	sum, ok := varDef.Expr.(*parser.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, lexer.PLUS, sum.Token.Tag)
	_, ok = sum.LHS.(*parser.Identifier)
	require.True(t, ok)
	cplx, ok := sum.RHS.(*parser.Complex)
	require.True(t, ok)
	im, ok := cplx.Imaginary.(*parser.Constant)
	require.True(t, ok)
	require.Equal(t, int64(2), im.Token.Int)
}

func TestFunctionDeclaration(t *testing.T) {
	stmt := parseOK(t, "fun f : double (x : int, z : complex);")

	decl, ok := stmt.(*parser.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "f", decl.Token.Text)
	require.Equal(t, lexer.TypeDouble, decl.ReturnType)
	require.Len(t, decl.Params, 2)
	require.Equal(t, "x", decl.Params[0].Name())
	require.Equal(t, lexer.TypeInt, decl.Params[0].Type)
	require.Equal(t, "z", decl.Params[1].Name())
	require.Equal(t, lexer.TypeComplex, decl.Params[1].Type)
}

func TestTrailingCommaTolerated(t *testing.T) {
	stmt := parseOK(t, "fun f : int (x : int,);")
	decl, ok := stmt.(*parser.FunctionDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Params, 1)

	stmt = parseOK(t, "int a = f(1, 2,);")
	varDef, ok := stmt.(*parser.VariableDefinition)
	require.True(t, ok)
	call, ok := varDef.Expr.(*parser.FunctionCall)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestMissingSemicolon(t *testing.T) {
	_, err := parse(t, "int a = 1")
	var parseErr *parser.Error
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Msg, parser.NoSemicolon)
}

func TestMissingColon(t *testing.T) {
	_, err := parse(t, "fun main int () {}")
	var parseErr *parser.Error
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Msg, parser.NoColon)
}

func TestUninitializedVariable(t *testing.T) {
	_, err := parse(t, "int a;")
	var parseErr *parser.Error
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Msg, "Variable a was not initialized")
}

func TestTopLevelGarbage(t *testing.T) {
	_, err := parse(t, "return 0;")
	var parseErr *parser.Error
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Msg, "Expected variable or function definition")
}

func TestEndOfInput(t *testing.T) {
	stmt, err := parse(t, "  \n\t ")
	require.NoError(t, err)
	require.Nil(t, stmt)
}

func TestBracelessBlock(t *testing.T) {
	stmt := parseOK(t, "fun main : int () return 0;")
	fn, ok := stmt.(*parser.FunctionDefinition)
	require.True(t, ok)
	_, ok = fn.Body.(*parser.ReturnStatement)
	require.True(t, ok)
}
