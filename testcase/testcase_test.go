package testcase

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtract(t *testing.T) {
	doc := strings.Join([]string{
		"# Expressions",
		"",
		"Prose is ignored.",
		"",
		"## Test: addition",
		"",
		"```c-expr",
		"a + b",
		"```",
		"",
		"```ast",
		"(+ a b)",
		"```",
		"",
		"## Test: old style",
		"",
		"```std",
		"c89",
		"```",
		"",
		"```c",
		"int x;",
		"```",
		"",
		"```warnings",
		"first",
		"",
		"second",
		"```",
		"",
	}, "\n")

	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "addition")
	be.Equal(t, cases[0].InputType, InputExpression)
	be.Equal(t, cases[0].Input, "a + b")
	be.Equal(t, cases[0].Line, 5)
	ast, ok := cases[0].Assertion(AssertAST)
	be.True(t, ok)
	be.Equal(t, ast.Content, "(+ a b)")

	be.Equal(t, cases[1].InputType, InputTranslationUnit)
	std, ok := cases[1].Assertion(AssertStandard)
	be.True(t, ok)
	be.Equal(t, std.Content, "c89")
	warnings, ok := cases[1].Assertion(AssertWarnings)
	be.True(t, ok)
	be.Equal(t, warnings.Lines(), []string{"first", "second"})
	_, ok = cases[1].Assertion(AssertErrors)
	be.True(t, !ok)
}

func TestExtractRejectsMalformedCases(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "fence outside test",
			doc:  "```c\nint x;\n```\n",
			want: "outside of a test case",
		},
		{
			name: "no input",
			doc:  "## Test: empty\n\n```ast\n(unit)\n```\n",
			want: "has no input fence",
		},
		{
			name: "no assertion",
			doc:  "## Test: bare\n\n```c\nint x;\n```\n",
			want: "has no assertion fences",
		},
		{
			name: "two inputs",
			doc:  "## Test: twice\n\n```c\nint x;\n```\n\n```c-expr\nx\n```\n",
			want: "multiple input fences",
		},
		{
			name: "unknown language",
			doc:  "## Test: odd\n\n```c\nint x;\n```\n\n```python\npass\n```\n",
			want: "unknown fence language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.doc))
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), tt.want))
		})
	}
}

func TestUnlabeledFencesAreIgnored(t *testing.T) {
	doc := "Some notes:\n\n```\nnot a test\n```\n\n## Test: x\n\n```c-expr\nx\n```\n\n```ast\nx\n```\n"
	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
}
