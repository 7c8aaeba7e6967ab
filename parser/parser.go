// Package parser turns a token stream into statements and expressions.
//
// A Parser owns a cursor over the tokens of one parse session and shares a
// ctypes.Registry with its caller. Struct declarations and typedefs extend
// the registry as they are parsed, so later statements (and later parse
// sessions using the same registry) can refer to them.
package parser

import (
	"fmt"

	"github.com/strager/cfront/ast"
	"github.com/strager/cfront/ctypes"
	"github.com/strager/cfront/lexer"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	TypeError ErrorKind = iota
	ExpressionError
	StatementError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "type error"
	case ExpressionError:
		return "expression error"
	case StatementError:
		return "statement error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned for every parse failure. Parsing never recovers: the
// first error ends the session.
type Error struct {
	Kind  ErrorKind
	Pos   lexer.Position
	Token lexer.Token
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

type Parser struct {
	tokens []lexer.Token
	pos    int
	reg    *ctypes.Registry
}

// New returns a parser over tokens. The slice is used in place: the
// expression parser reclassifies ambiguous operator tokens in it. A
// trailing EOF token is added if missing.
func New(tokens []lexer.Token, reg *ctypes.Registry) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		var pos lexer.Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens, lexer.Token{Type: lexer.EOF, Pos: pos})
	}
	return &Parser{tokens: tokens, reg: reg}
}

// Registry returns the type registry shared by this parser.
func (p *Parser) Registry() *ctypes.Registry { return p.reg }

// AtEOF reports whether all tokens have been consumed.
func (p *Parser) AtEOF() bool { return p.peek().Type == lexer.EOF }

// peek returns the current token. The pointer aliases the token slice.
func (p *Parser) peek() *lexer.Token {
	return &p.tokens[p.pos]
}

// peekAt returns the token n positions ahead, clamped to the final EOF.
func (p *Parser) peekAt(n int) *lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1]
	}
	return &p.tokens[p.pos+n]
}

// advance consumes the current token and returns it. The cursor never
// moves past EOF.
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// expect consumes a token of type typ or fails with an error of the given
// kind. what describes the expected token, e.g. "';' after return value".
func (p *Parser) expect(typ lexer.TokenType, kind ErrorKind, what string) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type != typ {
		return lexer.Token{}, p.errorf(kind, *tok, "expected %s, found %s", what, tok)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(kind ErrorKind, tok lexer.Token, format string, args ...any) error {
	return &Error{
		Kind:  kind,
		Pos:   tok.Pos,
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// Parse tokenizes src and parses every statement in it, extending reg.
func Parse(src []byte, reg *ctypes.Registry) ([]ast.Stmt, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens, reg).ParseProgram()
}

// ParseStmt parses the first statement of src.
func ParseStmt(src string, reg *ctypes.Registry) (ast.Stmt, error) {
	tokens, err := lexer.Tokenize([]byte(src))
	if err != nil {
		return nil, err
	}
	return New(tokens, reg).ParseStatement()
}

// ParseExpr parses all of src as a single expression with a fresh
// registry.
func ParseExpr(src string) (ast.Expr, error) {
	tokens, err := lexer.Tokenize([]byte(src))
	if err != nil {
		return nil, err
	}
	return New(tokens, ctypes.NewRegistry()).ParseExpression(lexer.EOF)
}
