package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newLexer(t *testing.T, input string) *Lexer {
	t.Helper()
	l, err := New(strings.NewReader(input))
	require.NoError(t, err)
	return l
}

func firstToken(t *testing.T, input string) Token {
	t.Helper()
	token, err := newLexer(t, input).NextToken()
	require.NoError(t, err)
	return token
}

func expectToken(t *testing.T, l *Lexer, tag Tag) {
	t.Helper()
	token, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, tag, token.Tag)
}

func TestEmptyStream(t *testing.T) {
	token := firstToken(t, "")
	require.Equal(t, END, token.Tag)
}

func TestInteger(t *testing.T) {
	token := firstToken(t, "420")
	require.Equal(t, INT, token.Tag)
	require.Equal(t, int64(420), token.Int)
}

func TestDouble(t *testing.T) {
	token := firstToken(t, "420.42")
	require.Equal(t, DOUBLE, token.Tag)
	require.InDelta(t, 420.42, token.Float, 1e-12)
}

func TestComplex(t *testing.T) {
	l := newLexer(t, "420 + 4.2i")

	expectToken(t, l, INT)
	expectToken(t, l, PLUS)
	expectToken(t, l, DOUBLE)
	expectToken(t, l, I)
}

func TestRelationalOperators(t *testing.T) {
	l := newLexer(t, "\t==\t !=\t <\t <= > >=")

	expectToken(t, l, EQ)
	expectToken(t, l, NEQ)
	expectToken(t, l, LT)
	expectToken(t, l, LE)
	expectToken(t, l, GT)
	expectToken(t, l, GE)
}

func TestStringLiteral(t *testing.T) {
	const text = "Hello world!\n"
	token := firstToken(t, `"Hello world!\n"`)
	require.Equal(t, STRING, token.Tag)
	require.Equal(t, text, token.Text)

	l := newLexer(t, `"Hello world!\n`)
	_, err := l.NextToken()
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
}

func TestIdentifier(t *testing.T) {
	const name = "_variable123"
	token := firstToken(t, name)
	require.Equal(t, ID, token.Tag)
	require.Equal(t, name, token.Text)
}

func TestKeywords(t *testing.T) {
	l := newLexer(t, "\n\n\t   int double complex string fun main or and not if while return Re Im")

	for i := 0; i < 4; i++ {
		expectToken(t, l, TYPE)
	}

	expectToken(t, l, FUN)
	expectToken(t, l, MAIN)
	expectToken(t, l, OR)
	expectToken(t, l, AND)
	expectToken(t, l, NOT)
	expectToken(t, l, IF)
	expectToken(t, l, WHILE)
	expectToken(t, l, RETURN)
	expectToken(t, l, RE)
	expectToken(t, l, IM)
}

func TestAssignment(t *testing.T) {
	l := newLexer(t, "int i = 0")

	expectToken(t, l, TYPE)
	expectToken(t, l, ID)
	expectToken(t, l, ASSIGN)

	token, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, INT, token.Tag)
	require.Equal(t, int64(0), token.Int)
}

// TestSingleCharacters drives every printable ASCII character through the
// lexer. 'i' comes out as the imaginary unit because the preceding token is
// an identifier; every other letter and '_' is an identifier, digits are
// integers, known punctuation gets its tag, and anything else is an error.
func TestSingleCharacters(t *testing.T) {
	var sb strings.Builder
	for c := byte(' ' + 1); c < 127; c++ {
		if c != '"' {
			sb.WriteByte(c)
			sb.WriteByte(' ')
		}
	}
	l := newLexer(t, sb.String())

	for c := byte(' ' + 1); c < 127; c++ {
		if c == '"' {
			continue
		}
		switch {
		case c == 'i':
			expectToken(t, l, I)
		case isAlpha(c) || c == '_':
			expectToken(t, l, ID)
		case isDigit(c):
			expectToken(t, l, INT)
		default:
			if tag, ok := Operator(c); ok {
				expectToken(t, l, tag)
			} else {
				_, err := l.NextToken()
				var lexErr *Error
				require.ErrorAs(t, err, &lexErr, "character %q", c)
			}
		}
	}
}

func TestCaseSensitivity(t *testing.T) {
	l := newLexer(t, "Int dOuble re iM RETURN")

	for i := 0; i < 5; i++ {
		expectToken(t, l, ID)
	}
}

func TestLoneImaginary(t *testing.T) {
	token := firstToken(t, "i")
	require.Equal(t, ID, token.Tag)
	require.Equal(t, "i", token.Text)
}

func TestImaginaryAfterBracketAndVertical(t *testing.T) {
	l := newLexer(t, "(x)i |z|i a i ai")

	expectToken(t, l, OPEN_BRACKET)
	expectToken(t, l, ID)
	expectToken(t, l, CLOSE_BRACKET)
	expectToken(t, l, I)
	expectToken(t, l, VERTICAL)
	expectToken(t, l, ID)
	expectToken(t, l, VERTICAL)
	expectToken(t, l, I)
	expectToken(t, l, ID)
	expectToken(t, l, I)
	// "ai" is a single identifier: the scan is greedy.
	expectToken(t, l, ID)
}

func TestLineTracking(t *testing.T) {
	l := newLexer(t, "1\n2\n\n3")

	token, err := l.NextToken()
	require.NoError(t, err)
	require.Equal(t, 1, token.Line)

	token, err = l.NextToken()
	require.NoError(t, err)
	require.Equal(t, 2, token.Line)

	token, err = l.NextToken()
	require.NoError(t, err)
	require.Equal(t, 4, token.Line)
}

func TestBareExclamation(t *testing.T) {
	l := newLexer(t, "! ")
	_, err := l.NextToken()
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	require.Contains(t, lexErr.Msg, "Invalid token !")
}
