package format

import (
	"io"
	"strings"
)

// SExprEncoder writes the compact s-expression form of the AST, followed
// by one ";" comment line per diagnostic.
type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(doc *Document) error {
	var sb strings.Builder
	if doc.AST != nil {
		sb.WriteString(doc.AST.SExpr())
		sb.WriteByte('\n')
	}
	for _, d := range doc.Diagnostics {
		sb.WriteString("; ")
		sb.WriteString(d.Error())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}
