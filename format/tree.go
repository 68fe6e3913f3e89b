package format

import (
	"io"
)

type TreeEncoder struct {
	w         io.Writer
	positions bool
}

// NewTreeEncoder writes the indented node listing. With positions set,
// every node carries its source span.
func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(doc *Document) error {
	if doc.AST == nil {
		return nil
	}
	text := doc.AST.String()
	if e.positions {
		text = doc.AST.StringWithPositions()
	}
	_, err := io.WriteString(e.w, text)
	return err
}
