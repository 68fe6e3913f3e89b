// Package format renders parse results for humans and tools.
package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/c/token"
)

// Document is the result of parsing one source file.
type Document struct {
	File        string
	Standard    token.Standard
	AST         *parser.Node
	Diagnostics []*parser.ParseError
}

type Encoder interface {
	Encode(doc *Document) error
}

var encoders = map[string]func(w io.Writer) Encoder{
	"json":  func(w io.Writer) Encoder { return NewASTJSONEncoder(w) },
	"sexpr": func(w io.Writer) Encoder { return NewSExprEncoder(w) },
	"tree":  func(w io.Writer) Encoder { return NewTreeEncoder(w, false) },
	"tree+positions": func(w io.Writer) Encoder {
		return NewTreeEncoder(w, true)
	},
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return mk(w), nil
}

// Names lists the registered encoder names in sorted order.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
