package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cfront/c/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(doc *Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(doc *Document) ([]byte, error) {
	return json.MarshalIndent(documentToJSON(doc), "", "  ")
}

type jsonDocument struct {
	File        string               `json:"file,omitempty"`
	Standard    string               `json:"standard"`
	Errors      int                  `json:"errors"`
	Warnings    int                  `json:"warnings"`
	AST         *parser.Node         `json:"ast,omitempty"`
	Diagnostics []*parser.ParseError `json:"diagnostics,omitempty"`
}

func documentToJSON(doc *Document) *jsonDocument {
	jd := &jsonDocument{
		File:        doc.File,
		Standard:    doc.Standard.String(),
		AST:         doc.AST,
		Diagnostics: doc.Diagnostics,
	}
	for _, d := range doc.Diagnostics {
		if d.IsError() {
			jd.Errors++
		} else {
			jd.Warnings++
		}
	}
	return jd
}
