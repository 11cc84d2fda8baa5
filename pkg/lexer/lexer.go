package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Error is a terminal lexer failure.
type Error struct {
	Msg  string
	Line int
}

func (e *Error) Error() string {
	return e.Msg
}

var keywords = map[string]Tag{
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"fun":    FUN,
	"main":   MAIN,
	"return": RETURN,
	"Re":     RE,
	"Im":     IM,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
}

var typeNames = map[string]TypeID{
	"int":     TypeInt,
	"double":  TypeDouble,
	"complex": TypeComplex,
	"string":  TypeString,
}

// Lexer turns a byte stream into tokens on demand.
//
// It caches the tag of the previously emitted token to distinguish 'i' as a
// variable name from 'i' as the imaginary unit: only occurrences immediately
// following an integer, a double, a closing bracket, an identifier or '|'
// are classified as the imaginary unit. A lone 'i' is always a variable
// name; the number i must be written as '0 + 1i'.
type Lexer struct {
	reader *bufio.Reader
	peek   byte
	eof    bool
	prev   Tag

	// Line is the 1-based line of the character at peek.
	Line int
}

func New(r io.Reader) (*Lexer, error) {
	l := &Lexer{reader: bufio.NewReader(r), Line: 1}
	if err := l.readNext(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lexer) readNext() error {
	b, err := l.reader.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.eof = true
			l.peek = 0
			return nil
		}
		return &Error{Msg: "Failure when reading stream.", Line: l.Line}
	}
	l.peek = b
	return nil
}

// readNextIf advances and reports whether the new character matches next,
// consuming it when it does.
func (l *Lexer) readNextIf(next byte) (bool, error) {
	if err := l.readNext(); err != nil {
		return false, err
	}
	if l.eof || l.peek != next {
		return false, nil
	}
	return true, l.readNext()
}

func (l *Lexer) errorf(c byte) error {
	return &Error{
		Msg:  fmt.Sprintf("Invalid token %c at line %d.", c, l.Line),
		Line: l.Line,
	}
}

func (l *Lexer) whitespace() error {
	for !l.eof && l.peek <= ' ' {
		if l.peek == '\n' {
			l.Line++
		}
		if err := l.readNext(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lexer) equals() (Token, error) {
	ok, err := l.readNextIf('=')
	if err != nil {
		return Token{}, err
	}
	if ok {
		return Token{Tag: EQ, Line: l.Line}, nil
	}
	return Token{Tag: ASSIGN, Line: l.Line}, nil
}

func (l *Lexer) notEquals() (Token, error) {
	ok, err := l.readNextIf('=')
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, l.errorf('!')
	}
	return Token{Tag: NEQ, Line: l.Line}, nil
}

func (l *Lexer) lessThan() (Token, error) {
	ok, err := l.readNextIf('=')
	if err != nil {
		return Token{}, err
	}
	if ok {
		return Token{Tag: LE, Line: l.Line}, nil
	}
	return Token{Tag: LT, Line: l.Line}, nil
}

func (l *Lexer) greaterThan() (Token, error) {
	ok, err := l.readNextIf('=')
	if err != nil {
		return Token{}, err
	}
	if ok {
		return Token{Tag: GE, Line: l.Line}, nil
	}
	return Token{Tag: GT, Line: l.Line}, nil
}

// quotation scans a string literal. The opening '"' is at peek; the first
// read steps past it.
func (l *Lexer) quotation() (Token, error) {
	lineBegin := l.Line
	var literal []byte
	for {
		if err := l.readNext(); err != nil {
			return Token{}, err
		}
		if l.eof {
			return Token{}, &Error{
				Msg:  fmt.Sprintf("String literal at %d not closed.", lineBegin),
				Line: lineBegin,
			}
		}
		if l.peek == '"' {
			break
		}
		if l.peek == '\n' {
			l.Line++
		} else if l.peek == '\\' {
			if err := l.readNext(); err != nil {
				return Token{}, err
			}
			if l.eof {
				return Token{}, &Error{
					Msg:  fmt.Sprintf("String literal at %d not closed.", lineBegin),
					Line: lineBegin,
				}
			}
			switch l.peek {
			case 'n':
				l.peek = '\n'
			case 't':
				l.peek = '\t'
			}
		}
		literal = append(literal, l.peek)
	}
	if err := l.readNext(); err != nil {
		return Token{}, err
	}
	return Token{Tag: STRING, Text: string(literal), Line: l.Line}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// digit scans an integer or, when a '.' follows the digits, a double.
func (l *Lexer) digit() (Token, error) {
	var value int64
	for {
		value = value*10 + int64(l.peek-'0')
		if err := l.readNext(); err != nil {
			return Token{}, err
		}
		if l.eof || !isDigit(l.peek) {
			break
		}
	}

	if l.eof || l.peek != '.' {
		return Token{Tag: INT, Int: value, Line: l.Line}, nil
	}

	dvalue := float64(value)
	divisor := 10.0
	if err := l.readNext(); err != nil {
		return Token{}, err
	}
	for !l.eof && isDigit(l.peek) {
		dvalue += float64(l.peek-'0') / divisor
		divisor *= 10
		if err := l.readNext(); err != nil {
			return Token{}, err
		}
	}
	return Token{Tag: DOUBLE, Float: dvalue, Line: l.Line}, nil
}

// alpha scans an identifier, keyword, type name or the imaginary unit.
func (l *Lexer) alpha() (Token, error) {
	var word []byte
	for {
		word = append(word, l.peek)
		if err := l.readNext(); err != nil {
			return Token{}, err
		}
		if l.eof || (!isAlpha(l.peek) && !isDigit(l.peek) && l.peek != '_') {
			break
		}
	}
	text := string(word)

	if text == "i" && (l.prev == INT || l.prev == DOUBLE ||
		l.prev == CLOSE_BRACKET || l.prev == ID || l.prev == VERTICAL) {
		return Token{Tag: I, Text: text, Line: l.Line}, nil
	}

	if id, ok := typeNames[text]; ok {
		return Token{Tag: TYPE, Type: id, Line: l.Line}, nil
	}
	if tag, ok := keywords[text]; ok {
		return Token{Tag: tag, Text: text, Line: l.Line}, nil
	}
	return Token{Tag: ID, Text: text, Line: l.Line}, nil
}

// ret records the emitted token's tag for imaginary-unit disambiguation.
func (l *Lexer) ret(token Token, err error) (Token, error) {
	if err != nil {
		return token, err
	}
	l.prev = token.Tag
	return token, nil
}

// NextToken skips whitespace and returns the next token. At end of input it
// returns a token tagged END.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.whitespace(); err != nil {
		return Token{}, err
	}

	if l.eof {
		return l.ret(Token{Tag: END, Line: l.Line}, nil)
	}

	if isDigit(l.peek) {
		return l.ret(l.digit())
	}
	if isAlpha(l.peek) || l.peek == '_' {
		return l.ret(l.alpha())
	}

	curr := l.peek
	switch curr {
	case '=':
		return l.ret(l.equals())
	case '!':
		return l.ret(l.notEquals())
	case '<':
		return l.ret(l.lessThan())
	case '>':
		return l.ret(l.greaterThan())
	case '"':
		return l.ret(l.quotation())
	default:
		line := l.Line
		if err := l.readNext(); err != nil {
			return Token{}, err
		}
		if tag, ok := Operator(curr); ok {
			return l.ret(Token{Tag: tag, Line: line}, nil)
		}
		return Token{}, l.errorf(curr)
	}
}
