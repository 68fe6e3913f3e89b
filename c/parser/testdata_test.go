package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/cfront/c/lexer"
	"github.com/dhamidi/cfront/c/token"
	"github.com/dhamidi/cfront/testcase"
	"github.com/nalgeon/be"
)

// TestMarkdownCases runs every "## Test:" case under testdata.
func TestMarkdownCases(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		cases, err := testcase.Load(file)
		be.Err(t, err, nil)
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					runCase(t, tc)
				})
			}
		})
	}
}

func runCase(t *testing.T, tc testcase.TestCase) {
	std := token.C17
	if a, ok := tc.Assertion(testcase.AssertStandard); ok {
		var err error
		std, err = token.ParseStandard(a.Content)
		be.Err(t, err, nil)
	}

	toks, err := lexer.Tokenize([]byte(tc.Input), lexer.WithFile("test.c"), lexer.WithStandard(std))
	be.Err(t, err, nil)

	cfg := DefaultConfig()
	cfg.Standard = std
	p, err := New(cfg)
	be.Err(t, err, nil)

	ts := NewTokenStream(toks)
	var node *Node
	switch tc.InputType {
	case testcase.InputExpression:
		node, _ = p.ParseExpression(ts)
	case testcase.InputStatement:
		node, _ = p.ParseStatement(ts)
	default:
		node, _ = p.Parse(ts)
	}

	if a, ok := tc.Assertion(testcase.AssertAST); ok {
		if node == nil {
			t.Fatalf("line %d: no tree; diagnostics: %v", a.Line, messages(p.Diagnostics()))
		}
		be.Equal(t, node.SExpr(), strings.TrimSpace(a.Content))
	}

	wantErrors := []string(nil)
	if a, ok := tc.Assertion(testcase.AssertErrors); ok {
		wantErrors = a.Lines()
	}
	be.Equal(t, messages(p.Errors()), wantErrors)

	if a, ok := tc.Assertion(testcase.AssertWarnings); ok {
		be.Equal(t, messages(p.Warnings()), a.Lines())
	}
}
