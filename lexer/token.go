package lexer

import "fmt"

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	EOF TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"  // main, foo, _bar
	NUMBER TokenType = "NUMBER" // 12345
	STRING TokenType = "STRING"
	CHAR   TokenType = "CHAR"

	// Single-character operators
	ASSIGN    TokenType = "="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	AMPERSAND TokenType = "&"
	BANG      TokenType = "!"
	GT        TokenType = ">"
	LT        TokenType = "<"

	// Multi-character operators
	EQ          TokenType = "=="
	AND         TokenType = "&&"
	OR          TokenType = "||"
	GE          TokenType = ">="
	LE          TokenType = "<="
	ARROW       TokenType = "->"
	PLUS_PLUS   TokenType = "++"
	MINUS_MINUS TokenType = "--"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	TYPEDEF TokenType = "TYPEDEF"
	STRUCT  TokenType = "STRUCT"
	SIZEOF  TokenType = "SIZEOF"
	VOID    TokenType = "VOID"
	INT     TokenType = "INT"
	CHAR_KW TokenType = "CHAR_KW"
	LONG    TokenType = "LONG"
	FILE    TokenType = "FILE"
	RETURN  TokenType = "RETURN"
	IF      TokenType = "IF"
	ELSE    TokenType = "ELSE"
	WHILE   TokenType = "WHILE"
	FOR     TokenType = "FOR"

	// Only produced by the expression parser when it reclassifies an
	// ambiguous token in place.
	DEREF     TokenType = "unary *"
	NEG       TokenType = "unary -"
	PRE_INCR  TokenType = "prefix ++"
	PRE_DECR  TokenType = "prefix --"
	POST_INCR TokenType = "postfix ++"
	POST_DECR TokenType = "postfix --"
)

// Position is a location in the source buffer. Line and Col are 1-based.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexical unit. Literal holds the payload for
// identifiers, numbers, strings and characters, and the source text for
// everything else.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %s", t.Type, t.Literal)
	case STRING, CHAR:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case EOF:
		return "end of input"
	default:
		return fmt.Sprintf("'%s'", t.Literal)
	}
}

// multiCharTokens is matched before single characters. Entries must stay
// prefix-free with respect to each other; see TestMultiCharTableIsPrefixFree.
var multiCharTokens = []struct {
	text string
	typ  TokenType
}{
	{"||", OR},
	{"&&", AND},
	{">=", GE},
	{"<=", LE},
	{"==", EQ},
	{"->", ARROW},
	{"++", PLUS_PLUS},
	{"--", MINUS_MINUS},
}

var singleCharTokens = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	';': SEMICOLON,
	',': COMMA,
	'>': GT,
	'<': LT,
	'=': ASSIGN,
	'.': DOT,
	'&': AMPERSAND,
	'!': BANG,
}

var keywords = map[string]TokenType{
	"typedef": TYPEDEF,
	"struct":  STRUCT,
	"sizeof":  SIZEOF,
	"void":    VOID,
	"int":     INT,
	"char":    CHAR_KW,
	"long":    LONG,
	"FILE":    FILE,
	"return":  RETURN,
	"if":      IF,
	"else":    ELSE,
	"while":   WHILE,
	"for":     FOR,
}

// IsKeyword reports whether typ is a reserved word.
func IsKeyword(typ TokenType) bool {
	for _, kw := range keywords {
		if kw == typ {
			return true
		}
	}
	return false
}
