package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	node, err := Parse(input)
	be.Err(t, err, nil)
	return node
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		actual  string
	}{
		{`(ident "x")`, `(ident "x")`},
		{`...`, `(binary "+" (integer 1) (integer 2))`},
		{`(binary "+" ... (integer 2))`, `(binary "+" (integer 1) (integer 2))`},
		{`(call "f" ...)`, `(call "f")`},
		{`(call "f" ...)`, `(call "f" (ident "a") (ident "b"))`},
		{`(block ... (return ...))`, `(block (expr (ident "a")) (return (integer 0)))`},
		{`(binary "=" (ident "x") ...)`, `(binary "=" (ident "x") (binary "=" (ident "y") (integer 1)))`},
		{`()`, `()`},
	}

	for _, test := range tests {
		err := Match(mustParse(t, test.pattern), mustParse(t, test.actual))
		be.Err(t, err, nil)
	}
}

func TestMatchFailures(t *testing.T) {
	tests := []struct {
		pattern  string
		actual   string
		expected string
	}{
		{`(ident "x")`, `(ident "y")`, `root[1]: expected string "x", got string "y"`},
		{`(integer 1)`, `(integer "1")`, `root[1]: expected integer 1, got string "1"`},
		{`(call "f")`, `(call "f" (ident "a"))`, `root: unexpected list (ident "a") at index 2`},
		{`(call "f" (ident "a"))`, `(call "f")`, `root: expected list (ident "a") at index 2, got end of list`},
		{`(unary "*" (ident "p"))`, `(unary "*" (unary "*" (ident "p")))`, `root[2][0]: expected symbol ident, got symbol unary`},
		{`(block ... (return ...))`, `(block (expr (ident "a")))`, "root[1][0]: expected symbol return, got symbol expr"},
		{`x`, `(x)`, "root: expected symbol x, got list (x)"},
	}

	for _, test := range tests {
		err := Match(mustParse(t, test.pattern), mustParse(t, test.actual))
		be.Err(t, err, test.expected)
	}
}
