package lexer

import (
	"bytes"
	"fmt"
	"strings"
)

// Error is a fatal lexing failure such as an unterminated comment or
// string literal.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: lex error: %s", e.Pos, e.Msg)
}

// Lexer scans a source buffer left to right. A Lexer is single use; create
// a new one for every buffer.
type Lexer struct {
	input []byte
	pos   int // current reading position in input
	line  int
	col   int
}

// NewLexer creates a lexer over src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{input: src, line: 1, col: 1}
}

// Tokenize converts src into tokens. The result always ends with a single
// EOF token.
func Tokenize(src []byte) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Col: l.col}
}

func (l *Lexer) errorf(pos Position, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// peek returns the byte n positions ahead, or 0 past the end of input.
func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && !l.atEnd(); i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// NextToken scans the next token. At the end of input it returns EOF, and
// keeps returning EOF on further calls.
func (l *Lexer) NextToken() (Token, error) {
	for !l.atEnd() {
		start := l.position()
		c := l.input[l.pos]

		if c == '/' && l.peek(1) == '*' {
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}
			continue
		}

		if c == '#' {
			l.skipLine()
			continue
		}

		if typ, text, ok := l.matchMultiChar(); ok {
			l.advance(len(text))
			return Token{Type: typ, Literal: text, Pos: start}, nil
		}

		if typ, ok := singleCharTokens[c]; ok {
			l.advance(1)
			return Token{Type: typ, Literal: string(c), Pos: start}, nil
		}

		if c == '"' {
			lit, err := l.readString()
			if err != nil {
				return Token{}, err
			}
			return Token{Type: STRING, Literal: lit, Pos: start}, nil
		}

		if c == '\'' {
			lit, err := l.readCharLiteral()
			if err != nil {
				return Token{}, err
			}
			return Token{Type: CHAR, Literal: lit, Pos: start}, nil
		}

		if isLetter(c) {
			lit := l.readIdentifier()
			if kw, ok := keywords[lit]; ok {
				return Token{Type: kw, Literal: lit, Pos: start}, nil
			}
			return Token{Type: IDENT, Literal: lit, Pos: start}, nil
		}

		if isDigit(c) {
			return Token{Type: NUMBER, Literal: l.readNumber(), Pos: start}, nil
		}

		// Whitespace and anything unrecognized.
		l.advance(1)
	}
	return Token{Type: EOF, Pos: l.position()}, nil
}

func (l *Lexer) matchMultiChar() (TokenType, string, bool) {
	rest := l.input[l.pos:]
	for _, mc := range multiCharTokens {
		if bytes.HasPrefix(rest, []byte(mc.text)) {
			return mc.typ, mc.text, true
		}
	}
	return "", "", false
}

func (l *Lexer) skipBlockComment() error {
	start := l.position()
	l.advance(2) // skip /*
	for !l.atEnd() {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			l.advance(2) // skip */
			return nil
		}
		l.advance(1)
	}
	return l.errorf(start, "unterminated comment")
}

func (l *Lexer) skipLine() {
	for !l.atEnd() && l.input[l.pos] != '\n' {
		l.advance(1)
	}
	l.advance(1)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for !l.atEnd() && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.advance(1)
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for !l.atEnd() && isDigit(l.input[l.pos]) {
		l.advance(1)
	}
	return string(l.input[start:l.pos])
}

// readString reads a double-quoted literal and returns its decoded contents.
func (l *Lexer) readString() (string, error) {
	start := l.position()
	l.advance(1) // skip opening "

	var sb strings.Builder
	for {
		if l.atEnd() {
			return "", l.errorf(start, "unterminated string literal")
		}
		c := l.input[l.pos]
		if c == '"' {
			l.advance(1)
			return sb.String(), nil
		}
		if c == '\\' {
			if l.pos+1 >= len(l.input) {
				return "", l.errorf(start, "unterminated string literal")
			}
			sb.WriteByte(unescapeString(l.input[l.pos+1]))
			l.advance(2)
			continue
		}
		sb.WriteByte(c)
		l.advance(1)
	}
}

// readCharLiteral reads a single-quoted literal holding exactly one
// logical character.
func (l *Lexer) readCharLiteral() (string, error) {
	start := l.position()
	l.advance(1) // skip opening '

	if l.atEnd() {
		return "", l.errorf(start, "unterminated character literal")
	}
	var ch byte
	switch c := l.input[l.pos]; c {
	case '\'':
		return "", l.errorf(start, "empty character literal")
	case '\\':
		if l.pos+1 >= len(l.input) {
			return "", l.errorf(start, "unterminated character literal")
		}
		ch = unescape(l.input[l.pos+1])
		l.advance(2)
	default:
		ch = c
		l.advance(1)
	}

	if l.atEnd() || l.input[l.pos] != '\'' {
		return "", l.errorf(start, "unterminated character literal")
	}
	l.advance(1)
	return string([]byte{ch}), nil
}

// unescapeString maps the character after a backslash inside a string
// literal. Only \n and \t are special; anything else stands for itself.
func unescapeString(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

// unescape is unescapeString plus \0, for character literals.
func unescape(c byte) byte {
	if c == '0' {
		return 0
	}
	return unescapeString(c)
}
