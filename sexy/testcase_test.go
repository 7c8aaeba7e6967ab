package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

// fence renders a Markdown code fence.
func fence(language, body string) string {
	return "```" + language + "\n" + body + "\n```\n"
}

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := "# Binary expressions\n\n" +
		"## Test: addition\n" + fence("c-expr", "1 + 2") + fence("ast", `(binary "+" (integer 1) (integer 2))`) +
		"\n## Test: subtraction\n" + fence("c-expr", "1 - 2") + fence("ast", `(binary "-" (integer 1) (integer 2))`)

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc := testCases[0]
	be.Equal(t, tc.Name, "addition")
	be.Equal(t, tc.Input, "1 + 2")
	be.Equal(t, tc.InputType, InputTypeExpr)
	be.Equal(t, len(tc.Assertions), 1)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc.Assertions[0].Content, `(binary "+" (integer 1) (integer 2))`)
	be.Equal(t, len(tc.Assertions[0].Parsed), 1)
	be.Equal(t, tc.Assertions[0].Parsed[0].String(), `(binary "+" (integer 1) (integer 2))`)

	tc = testCases[1]
	be.Equal(t, tc.Name, "subtraction")
	be.Equal(t, tc.Input, "1 - 2")
}

func TestExtractTestCases_InputTypes(t *testing.T) {
	markdown := "## Test: expr\n" + fence("c-expr", "x") + fence("ast", `(ident "x")`) +
		"## Test: stmt\n" + fence("c-stmt", "int x;") + fence("ast", `(decl int "x")`) +
		"## Test: program\n" + fence("c-program", "int x;\nx = 1;") + fence("ast", "(decl int \"x\")\n(expr ...)")

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 3)
	be.Equal(t, testCases[0].InputType, InputTypeExpr)
	be.Equal(t, testCases[1].InputType, InputTypeStmt)
	be.Equal(t, testCases[2].InputType, InputTypeProgram)
	be.Equal(t, testCases[2].Input, "int x;\nx = 1;")
	be.Equal(t, len(testCases[2].Assertions[0].Parsed), 2)
	be.Equal(t, testCases[2].Assertions[0].Parsed[1].Items[1].Type, NodeEllipsis)
}

func TestExtractTestCases_AssertionTypes(t *testing.T) {
	markdown := "## Test: struct\n" + fence("c-program", "struct S { int a; };") +
		fence("ast", "(typedecl (struct \"S\"))") +
		fence("types", "(struct \"S\" 4 ...)") +
		"## Test: broken\n" + fence("c-expr", "1 +") + fence("parse-error", "missing operand")

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc := testCases[0]
	be.Equal(t, len(tc.Assertions), 2)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeTypes)
	be.Equal(t, tc.Assertions[1].Parsed[0].String(), `(struct "S" 4 ...)`)

	tc = testCases[1]
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeParseError)
	be.Equal(t, tc.Assertions[0].Content, "missing operand")
	be.Equal(t, len(tc.Assertions[0].Parsed), 0)
}

func TestExtractTestCases_ParseErrorIsNotSExpression(t *testing.T) {
	markdown := "## Test: unbalanced\n" + fence("c-expr", "(1") + fence("parse-error", "unexpected end of input (")

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Assertions[0].Content, "unexpected end of input (")
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_IgnoresOtherHeadings(t *testing.T) {
	markdown := "# Notes\n\nSome prose.\n\n## Background\n\n" + fence("", "plain block")

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_AllowFencesWithoutLanguage(t *testing.T) {
	markdown := "## Test: with notes\n" + fence("", "just a note") + fence("c-expr", "a") +
		fence("", "another note") + fence("ast", `(ident "a")`)

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Input, "a")
	be.Equal(t, len(testCases[0].Assertions), 1)
}

func TestExtractTestCases_LineNumber(t *testing.T) {
	markdown := "# Suite\n\n## Test: first\n" + fence("c-expr", "a") + fence("ast", `(ident "a")`)

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	// Line 4 holds the opening fence; its content starts on line 5.
	be.Equal(t, testCases[0].Line, 5)
}

func TestExtractTestCases_Errors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{
			"invalid s-expression",
			"## Test: bad\n" + fence("c-expr", "a") + fence("ast", "(ident"),
			"failed to parse Sexy assertion in test 'bad'",
		},
		{
			"input fence outside test",
			fence("c-expr", "a"),
			"c-expr fence found outside of test case",
		},
		{
			"assertion fence outside test",
			fence("ast", "(ident \"a\")"),
			"ast fence found outside of test case",
		},
		{
			"unknown fence outside test",
			fence("go", "package main"),
			"unknown fence language 'go' found outside of test case",
		},
		{
			"unknown fence in test",
			"## Test: odd\n" + fence("c-expr", "a") + fence("wasm", "(module)"),
			"unknown fence language 'wasm' in test 'odd'",
		},
		{
			"missing input",
			"## Test: empty\n" + fence("ast", `(ident "a")`),
			"test 'empty' has no input fence",
		},
		{
			"missing assertion",
			"## Test: lonely\n" + fence("c-expr", "a"),
			"test 'lonely' has no assertion fences",
		},
		{
			"two inputs",
			"## Test: twice\n" + fence("c-expr", "a") + fence("c-stmt", "a;") + fence("ast", "..."),
			"multiple input fences found in test 'twice'",
		},
		{
			"mixed parse-error",
			"## Test: mixed\n" + fence("c-expr", "1 +") + fence("parse-error", "missing") + fence("ast", "..."),
			"test 'mixed' mixes parse-error with other assertions",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.Err(t, err, test.expected)
		})
	}
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := "## Test: good\n" + fence("c-expr", "a") + fence("ast", `(ident "a")`) +
		"## Test: bad\n" + fence("c-expr", "b")

	_, err := ExtractTestCases(markdown)
	be.Err(t, err, "test 'bad' has no assertion fences")
}

func TestExtractTestCases_ErrorCarriesLine(t *testing.T) {
	markdown := "## Test: bad\n" + fence("c-expr", "a") + fence("ast", "(ident")

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "line 6:"))
}
