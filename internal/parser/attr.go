package parser

import (
	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// skipAttributes пропускает GNU __attribute__((...)); их семантика не моделируется.
func (p *Parser) skipAttributes() {
	for p.at(token.KwAttribute) {
		p.advance()
		if !p.at(token.LParen) {
			p.err(diag.SynUnexpectedToken, "expected '(' after '__attribute__'")
			return
		}
		p.skipBalanced()
	}
}

// skipAsmLabel пропускает `__asm__("name")` после декларатора.
func (p *Parser) skipAsmLabel() bool {
	if !p.at(token.KwAsm) {
		return false
	}
	p.advance()
	if p.at(token.LParen) {
		p.skipBalanced()
	}
	return true
}

// skipExtensions съедает __extension__ перед объявлением.
func (p *Parser) skipExtensions() {
	for p.at(token.KwExtension) {
		p.advance()
	}
}
