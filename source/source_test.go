package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pkg/errors"
	"github.com/strager/cfront/lexer"
)

func TestConcatWithoutSeparatorMergesTokens(t *testing.T) {
	buf := Concat([]Input{
		{Name: "a.c", Data: []byte("int")},
		{Name: "b.c", Data: []byte("x;")},
	}, SeparatorNone)
	be.Equal(t, string(buf.Data), "intx;")

	tokens, err := lexer.Tokenize(buf.Data)
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Type, lexer.IDENT)
	be.Equal(t, tokens[0].Literal, "intx")
}

func TestConcatWithNewlineKeepsTokensApart(t *testing.T) {
	buf := Concat([]Input{
		{Name: "a.c", Data: []byte("int")},
		{Name: "b.c", Data: []byte("x;")},
	}, SeparatorNewline)
	be.Equal(t, string(buf.Data), "int\nx;")

	tokens, err := lexer.Tokenize(buf.Data)
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Type, lexer.INT)
	be.Equal(t, tokens[1].Literal, "x")
}

func TestLocate(t *testing.T) {
	buf := Concat([]Input{
		{Name: "a.c", Data: []byte("int x;\nint y;")},
		{Name: "b.c", Data: []byte("y = 1;\n  z;")},
	}, SeparatorNewline)

	tests := []struct {
		offset   int
		expected string
	}{
		{0, "a.c:1:1"},
		{4, "a.c:1:5"},
		{11, "a.c:2:5"},
		{13, "a.c:2:7"}, // separator
		{14, "b.c:1:1"},
		{23, "b.c:2:3"},
		{100, "b.c:2:5"},
	}

	for _, test := range tests {
		be.Equal(t, buf.Locate(test.offset).String(), test.expected)
	}
}

func TestLocateWithoutInputs(t *testing.T) {
	buf := Concat(nil, SeparatorNone)
	be.Equal(t, len(buf.Data), 0)
	be.Equal(t, buf.Locate(3).String(), "1:4")
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.c")
	b := filepath.Join(dir, "b.c")
	be.Err(t, os.WriteFile(a, []byte("int x;"), 0644), nil)
	be.Err(t, os.WriteFile(b, []byte("int y;"), 0644), nil)

	buf, err := ReadFiles([]string{a, b}, SeparatorNone)
	be.Err(t, err, nil)
	be.Equal(t, string(buf.Data), "int x;int y;")
	be.Equal(t, buf.Files(), []string{a, b})
	be.Equal(t, buf.Locate(6).File, b)
}

func TestReadFilesMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.c")
	_, err := ReadFiles([]string{missing}, SeparatorNone)
	be.Err(t, err, "reading "+missing)
	be.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestParseSeparator(t *testing.T) {
	sep, err := ParseSeparator("")
	be.Err(t, err, nil)
	be.Equal(t, sep, SeparatorNone)

	sep, err = ParseSeparator("newline")
	be.Err(t, err, nil)
	be.Equal(t, sep, SeparatorNewline)

	_, err = ParseSeparator("comma")
	be.Err(t, err, `unknown separator "comma"`)
}
