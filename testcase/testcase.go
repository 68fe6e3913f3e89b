// Package testcase extracts parser test cases from Markdown documents.
//
// A test case starts at a heading "Test: <name>" and holds exactly one input
// fence followed by one or more assertion fences:
//
//	## Test: return zero
//
//	```c
//	int main(void) { return 0; }
//	```
//
//	```ast
//	(unit (function main int (params) (block (return 0))))
//	```
package testcase

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType says which entry point parses the input.
type InputType string

const (
	InputTranslationUnit InputType = "c"
	InputExpression      InputType = "c-expr"
	InputStatement       InputType = "c-stmt"
)

// AssertionType names what an assertion fence checks.
type AssertionType string

const (
	// AssertAST compares the S-expression rendering of the tree.
	AssertAST AssertionType = "ast"
	// AssertErrors lists the expected error messages, one per line.
	AssertErrors AssertionType = "errors"
	// AssertWarnings lists the expected warning messages, one per line.
	AssertWarnings AssertionType = "warnings"
	// AssertStandard selects the C standard for the input, e.g. "c89".
	AssertStandard AssertionType = "std"
)

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

// Lines splits the assertion body into its non-blank lines.
func (a Assertion) Lines() []string {
	var out []string
	for _, line := range strings.Split(a.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Line       int
	Assertions []Assertion
}

// Assertion returns the first assertion of the given type.
func (tc TestCase) Assertion(typ AssertionType) (Assertion, bool) {
	for _, a := range tc.Assertions {
		if a.Type == typ {
			return a, true
		}
	}
	return Assertion{}, false
}

// Load reads and extracts the test cases in a Markdown file.
func Load(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Extract parses a Markdown document and returns its test cases in order.
func Extract(source []byte) ([]TestCase, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := headingText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &TestCase{
				Name: strings.TrimPrefix(heading, "Test: "),
				Line: lineOf(n, source),
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := strings.TrimRight(fenceContent(n, source), "\n")
			line := lineOf(n, source)

			if current == nil {
				if isInput(language) || isAssertion(language) {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, language)
				}
				return ast.WalkContinue, nil
			}

			switch {
			case isInput(language):
				if current.InputType != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in test %q", line, current.Name)
				}
				current.Input = content
				current.InputType = InputType(language)
			case isAssertion(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: content,
					Line:    line,
				})
			case language != "":
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(tc *TestCase) error {
	if tc.InputType == "" {
		return fmt.Errorf("test %q has no input fence", tc.Name)
	}
	for _, a := range tc.Assertions {
		if a.Type != AssertStandard {
			return nil
		}
	}
	return fmt.Errorf("test %q has no assertion fences", tc.Name)
}

func isInput(language string) bool {
	switch InputType(language) {
	case InputTranslationUnit, InputExpression, InputStatement:
		return true
	}
	return false
}

func isAssertion(language string) bool {
	switch AssertionType(language) {
	case AssertAST, AssertErrors, AssertWarnings, AssertStandard:
		return true
	}
	return false
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
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

// lineOf returns the 1-based line of the node's first content line.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}
