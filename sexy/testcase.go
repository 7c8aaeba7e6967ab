package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType represents the type of input code fence in a Sexy test
type InputType string

const (
	InputTypeExpr    InputType = "c-expr"
	InputTypeStmt    InputType = "c-stmt"
	InputTypeProgram InputType = "c-program"
)

// AssertionType represents the type of assertion code fence in a Sexy test
type AssertionType string

const (
	// AssertionTypeAST lists the expected s-expression of each parsed node.
	AssertionTypeAST AssertionType = "ast"
	// AssertionTypeTypes lists the expected user-defined registry entries.
	AssertionTypeTypes AssertionType = "types"
	// AssertionTypeParseError holds text the parse error message must
	// contain.
	AssertionTypeParseError AssertionType = "parse-error"
)

// Assertion represents a single assertion in a Sexy test
type Assertion struct {
	Type    AssertionType
	Content string  // The raw content of the assertion code fence
	Parsed  []*Node // Every datum in Content; nil for parse-error
}

// TestCase is one "Test: name" section of a Markdown suite.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Line       int // line of the input fence
	Assertions []Assertion
}

const testHeadingPrefix = "Test: "

// ExtractTestCases parses a Markdown document and extracts its test cases.
//
// A test case starts at a heading "Test: name" and holds exactly one input
// fence (c-expr, c-stmt or c-program) followed by one or more assertion
// fences. Fences without a language are ignored; any other fence language
// is an error.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	x := &extractor{source: []byte(markdownContent)}
	doc := goldmark.New().Parser().Parse(text.NewReader(x.source))

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var err error
		switch n := node.(type) {
		case *ast.Heading:
			err = x.heading(n)
		case *ast.FencedCodeBlock:
			err = x.fence(n)
		}
		if err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := x.flush(); err != nil {
		return nil, err
	}
	return x.cases, nil
}

type extractor struct {
	source  []byte
	cases   []TestCase
	current *TestCase
}

func (x *extractor) heading(n *ast.Heading) error {
	title := nodeText(n, x.source)
	if !strings.HasPrefix(title, testHeadingPrefix) {
		return nil
	}
	if err := x.flush(); err != nil {
		return err
	}
	x.current = &TestCase{Name: strings.TrimPrefix(title, testHeadingPrefix)}
	return nil
}

func (x *extractor) fence(n *ast.FencedCodeBlock) error {
	language := string(n.Language(x.source))
	line := lineOf(n, x.source)
	if language == "" {
		return nil
	}

	known := isInputFence(language) || isAssertionFence(language)
	if x.current == nil {
		if known {
			return fmt.Errorf("line %d: %s fence found outside of test case", line, language)
		}
		return fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", line, language)
	}
	tc := x.current
	if !known {
		return fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, tc.Name)
	}

	content := strings.TrimRight(fenceContent(n, x.source), "\n")
	if isInputFence(language) {
		if tc.Input != "" {
			return fmt.Errorf("line %d: multiple input fences found in test '%s'", line, tc.Name)
		}
		tc.Input = content
		tc.InputType = InputType(language)
		tc.Line = line
		return nil
	}

	assertion := Assertion{Type: AssertionType(language), Content: content}
	if assertion.Type != AssertionTypeParseError {
		parsed, err := ParseAll(content)
		if err != nil {
			return fmt.Errorf("line %d: failed to parse Sexy assertion in test '%s': %w", line, tc.Name, err)
		}
		assertion.Parsed = parsed
	}
	tc.Assertions = append(tc.Assertions, assertion)
	return nil
}

// flush validates and records the test case in progress, if any.
func (x *extractor) flush() error {
	tc := x.current
	if tc == nil {
		return nil
	}
	x.current = nil
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	for _, a := range tc.Assertions {
		if a.Type == AssertionTypeParseError && len(tc.Assertions) > 1 {
			return fmt.Errorf("test '%s' mixes parse-error with other assertions", tc.Name)
		}
	}
	x.cases = append(x.cases, *tc)
	return nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func isInputFence(language string) bool {
	switch InputType(language) {
	case InputTypeExpr, InputTypeStmt, InputTypeProgram:
		return true
	}
	return false
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionTypeAST, AssertionTypeTypes, AssertionTypeParseError:
		return true
	}
	return false
}

// lineOf returns the 1-based line of a block's first content line.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte{'\n'}) + 1
}
