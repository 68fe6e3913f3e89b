package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cfront/c/token"
)

// TokenEncoder writes one token per line as tab-separated
// position, kind and quoted lexeme.
type TokenEncoder struct {
	w    io.Writer
	json bool
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

// NewTokenJSONEncoder writes the tokens as a JSON array instead.
func NewTokenJSONEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w, json: true}
}

func (e *TokenEncoder) Encode(tokens []token.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func (e *TokenEncoder) MarshalText(tokens []token.Token) ([]byte, error) {
	if e.json {
		out := make([]jsonToken, len(tokens))
		for i, t := range tokens {
			out[i] = jsonToken{
				Kind:   t.Kind.String(),
				Lexeme: t.Lexeme,
				Line:   t.Pos.Line,
				Column: t.Pos.Column,
				Offset: t.Pos.Offset,
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var sb strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%q\n", t.Pos.Line, t.Pos.Column, t.Kind, t.Lexeme)
	}
	return []byte(sb.String()), nil
}
