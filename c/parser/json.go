package parser

import (
	"encoding/json"

	"github.com/dhamidi/cfront/c/token"
)

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Op       string      `json:"op,omitempty"`
	Name     string      `json:"name,omitempty"`
	Value    string      `json:"value,omitempty"`
	Type     string      `json:"type,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
		Name: n.Name,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Op != token.EOF {
		jn.Op = n.Op.String()
	} else if n.Token != nil && n.Name == "" {
		jn.Value = n.Token.Lexeme
	}

	if n.Type != nil {
		jn.Type = n.Type.String()
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

type jsonDiagnostic struct {
	Kind        string   `json:"kind"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	Span        jsonSpan `json:"span"`
	Expected    []string `json:"expected,omitempty"`
	Actual      string   `json:"actual,omitempty"`
	Missing     string   `json:"missing,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (e *ParseError) MarshalJSON() ([]byte, error) {
	jd := jsonDiagnostic{
		Kind:     e.Kind.String(),
		Severity: e.Severity.String(),
		Message:  e.Message,
		Span: jsonSpan{
			Start: jsonPosition{Line: e.Range.Start.Line, Column: e.Range.Start.Column},
			End:   jsonPosition{Line: e.Range.End.Line, Column: e.Range.End.Column},
		},
		Actual:      e.Actual.Lexeme,
		Notes:       e.Notes,
		Suggestions: e.Suggestions,
	}
	for _, k := range e.Expected {
		jd.Expected = append(jd.Expected, k.String())
	}
	if e.Kind == ErrMissingToken {
		jd.Missing = e.Missing.String()
	}
	return json.Marshal(jd)
}
