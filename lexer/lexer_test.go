package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func lexInput(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize([]byte(input))
	be.Err(t, err, nil)
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestNumberLiteral(t *testing.T) {
	tokens := lexInput(t, "12345")
	be.Equal(t, len(tokens), 2)
	be.Equal(t, tokens[0].Type, NUMBER)
	be.Equal(t, tokens[0].Literal, "12345")
	be.Equal(t, tokens[1].Type, EOF)
}

func TestIdentifier(t *testing.T) {
	tokens := lexInput(t, "foo_bar9 _x")
	be.Equal(t, tokenTypes(tokens), []TokenType{IDENT, IDENT, EOF})
	be.Equal(t, tokens[0].Literal, "foo_bar9")
	be.Equal(t, tokens[1].Literal, "_x")
}

func TestKeywordsAreWholeWords(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"int", INT},
		{"char", CHAR_KW},
		{"void", VOID},
		{"long", LONG},
		{"FILE", FILE},
		{"struct", STRUCT},
		{"typedef", TYPEDEF},
		{"sizeof", SIZEOF},
		{"return", RETURN},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"integer", IDENT},
		{"iffy", IDENT},
		{"format", IDENT},
		{"file", IDENT},
	}

	for _, tt := range tests {
		tokens := lexInput(t, tt.input)
		be.Equal(t, tokens[0].Type, tt.expected)
		be.Equal(t, tokens[0].Literal, tt.input)
	}
}

func TestSingleCharTokens(t *testing.T) {
	tokens := lexInput(t, "(){}[]+-*/;,><=.&!")
	be.Equal(t, tokenTypes(tokens), []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		PLUS, MINUS, ASTERISK, SLASH, SEMICOLON, COMMA,
		GT, LT, ASSIGN, DOT, AMPERSAND, BANG, EOF,
	})
}

func TestMultiCharOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"||", []TokenType{OR, EOF}},
		{"&&", []TokenType{AND, EOF}},
		{">=", []TokenType{GE, EOF}},
		{"<=", []TokenType{LE, EOF}},
		{"==", []TokenType{EQ, EOF}},
		{"->", []TokenType{ARROW, EOF}},
		{"++", []TokenType{PLUS_PLUS, EOF}},
		{"--", []TokenType{MINUS_MINUS, EOF}},
		{"+++", []TokenType{PLUS_PLUS, PLUS, EOF}},
		{"a->b", []TokenType{IDENT, ARROW, IDENT, EOF}},
		{"x--", []TokenType{IDENT, MINUS_MINUS, EOF}},
		{"= =", []TokenType{ASSIGN, ASSIGN, EOF}},
	}

	for _, tt := range tests {
		be.Equal(t, tokenTypes(lexInput(t, tt.input)), tt.expected)
	}
}

func TestMultiCharTableIsPrefixFree(t *testing.T) {
	for i, a := range multiCharTokens {
		for j, b := range multiCharTokens {
			if i != j && strings.HasPrefix(b.text, a.text) {
				t.Errorf("%q is a prefix of %q", a.text, b.text)
			}
		}
	}
}

func TestStringLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"say \"hi\""`, `say "hi"`},
		{`"back\\slash"`, `back\slash`},
		{`"\q"`, "q"},
		{`"\0"`, "0"},
	}

	for _, tt := range tests {
		tokens := lexInput(t, tt.input)
		be.Equal(t, tokens[0].Type, STRING)
		be.Equal(t, tokens[0].Literal, tt.expected)
	}
}

func TestCharLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'a'`, "a"},
		{`'\n'`, "\n"},
		{`'\t'`, "\t"},
		{`'\0'`, "\x00"},
		{`'\\'`, `\`},
		{`'\''`, "'"},
		{`'"'`, `"`},
	}

	for _, tt := range tests {
		tokens := lexInput(t, tt.input)
		be.Equal(t, tokens[0].Type, CHAR)
		be.Equal(t, tokens[0].Literal, tt.expected)
	}
}

func TestCommentsAndPreprocessorLinesProduceNoTokens(t *testing.T) {
	input := "#include <stdio.h>\nint /* a\nmulti-line comment */ x; # trailing\n"
	tokens := lexInput(t, input)
	be.Equal(t, tokenTypes(tokens), []TokenType{INT, IDENT, SEMICOLON, EOF})
}

func TestUnknownCharactersAreSkipped(t *testing.T) {
	tokens := lexInput(t, "a @ $ b\t\r\n")
	be.Equal(t, tokenTypes(tokens), []TokenType{IDENT, IDENT, EOF})
}

func TestPositions(t *testing.T) {
	tokens := lexInput(t, "int x;\n  y = 1;")
	be.Equal(t, tokens[0].Pos, Position{Offset: 0, Line: 1, Col: 1})
	be.Equal(t, tokens[1].Pos, Position{Offset: 4, Line: 1, Col: 5})
	be.Equal(t, tokens[3].Pos, Position{Offset: 9, Line: 2, Col: 3})
	be.Equal(t, tokens[len(tokens)-1].Type, EOF)
	be.Equal(t, tokens[len(tokens)-1].Pos.Offset, 15)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"int /* never closed", "unterminated comment"},
		{"/*", "unterminated comment"},
		{`"abc`, "unterminated string literal"},
		{`"abc\`, "unterminated string literal"},
		{`'a`, "unterminated character literal"},
		{`'ab'`, "unterminated character literal"},
		{`''`, "empty character literal"},
		{`'`, "unterminated character literal"},
	}

	for _, tt := range tests {
		_, err := Tokenize([]byte(tt.input))
		var lexErr *Error
		be.True(t, errors.As(err, &lexErr))
		be.Equal(t, lexErr.Msg, tt.message)
	}
}

func TestLexErrorPosition(t *testing.T) {
	_, err := Tokenize([]byte("x;\n  \"oops"))
	be.Equal(t, err.Error(), "2:3: lex error: unterminated string literal")
}

func TestEmptyInput(t *testing.T) {
	tokens := lexInput(t, "")
	be.Equal(t, tokenTypes(tokens), []TokenType{EOF})
}
