package parser

import (
	"github.com/dhamidi/cfront/c/token"
	"golang.org/x/text/unicode/norm"
)

// checkIdentifiers warns about identifiers that are not in Normalization
// Form C, which C23 requires of extended identifiers.
func (p *Parser) checkIdentifiers() {
	if !p.cfg.Standard.AtLeast(token.C23) {
		return
	}
	for i := 0; i < p.ts.Len(); i++ {
		tok := p.ts.At(i)
		if tok.Kind != token.IDENT || isASCII(tok.Lexeme) {
			continue
		}
		if !norm.NFC.IsNormalString(tok.Lexeme) {
			p.report(NewWarning(tok, "identifier '%s' is not in Normalization Form C", tok.Lexeme).
				Suggest("write it as '%s'", norm.NFC.String(tok.Lexeme)))
		}
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
