package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/token"
	"cbridge/internal/types"
)

// specContext ограничивает допустимые спецификаторы.
type specContext uint8

const (
	specDecl     specContext = iota // объявление
	specParam                       // параметр функции
	specMember                      // член структуры
	specTypeName                    // имя типа в cast/sizeof
)

func storageOf(k token.Kind) ast.StorageClass {
	switch k {
	case token.KwExtern:
		return ast.SCExtern
	case token.KwStatic:
		return ast.SCStatic
	case token.KwAuto:
		return ast.SCAuto
	case token.KwRegister:
		return ast.SCRegister
	}
	return ast.SCNone
}

func isTypeof(text string) bool {
	return text == "typeof" || text == "__typeof__" || text == "__typeof"
}

// isTypeSpecStart: может ли токен начинать имя типа.
func (p *Parser) isTypeSpecStart(tok token.Token) bool {
	switch tok.Kind {
	case token.KwVoid, token.KwBool, token.KwChar, token.KwShort, token.KwInt, token.KwLong,
		token.KwFloat, token.KwDouble, token.KwSigned, token.KwUnsigned, token.KwInt128,
		token.KwStruct, token.KwUnion, token.KwEnum,
		token.KwConst, token.KwVolatile, token.KwRestrict, token.KwAlignas:
		return true
	case token.Ident:
		return isTypeof(tok.Text) || p.s.IsTypeName(tok.Text)
	}
	return false
}

// isDeclStart: начинает ли токен объявление (а не выражение).
func (p *Parser) isDeclStart(tok token.Token) bool {
	switch tok.Kind {
	case token.KwTypedef, token.KwExtern, token.KwStatic, token.KwAuto, token.KwRegister,
		token.KwInline, token.KwNoreturn, token.KwThreadLocal, token.KwStaticAssert,
		token.KwAttribute:
		return true
	case token.KwExtension:
		for i := 1; ; i++ {
			if next := p.peekN(i); next.Kind != token.KwExtension {
				return p.isDeclStart(next)
			}
		}
	}
	return p.isTypeSpecStart(tok)
}

// parseDeclSpecs собирает спецификаторы объявления в sema.DeclSpec.
func (p *Parser) parseDeclSpecs(ctx specContext) *sema.DeclSpec {
	ds := &sema.DeclSpec{}
	for {
		tok := p.peek()
		start := p.pos
		if !p.declSpec(ds, tok, ctx) {
			break
		}
		if p.pos > start {
			ds.Span = ds.Span.Cover(tok.Span.Cover(p.lastSpan))
		}
	}
	return ds
}

// declSpec обрабатывает один спецификатор; false: спецификаторы кончились.
func (p *Parser) declSpec(ds *sema.DeclSpec, tok token.Token, ctx specContext) bool {
	switch tok.Kind {
	case token.KwTypedef, token.KwExtern, token.KwStatic, token.KwAuto, token.KwRegister:
		p.advance()
		if ctx == specTypeName || ctx == specMember {
			p.report(diag.SynInvalidSpecifiers, diag.SevError, tok.Span, "type name does not allow storage class to be specified")
			return true
		}
		p.s.SetStorage(ds, storageOf(tok.Kind), tok.Kind == token.KwTypedef, tok.Span)
	case token.KwThreadLocal:
		p.advance()
		ds.ThreadLocal = true
	case token.KwInline:
		p.advance()
		ds.Inline = true
	case token.KwNoreturn:
		p.advance()
		ds.Noreturn = true
	case token.KwConst, token.KwVolatile, token.KwRestrict:
		p.advance()
		p.addQualifier(&ds.Quals, tok)
	case token.KwAlignas:
		p.advance()
		if p.at(token.LParen) {
			p.skipBalanced()
		}
	case token.KwAttribute:
		p.skipAttributes()
	case token.KwExtension:
		p.advance()
	case token.KwVoid:
		p.advance()
		p.s.SetBase(ds, sema.BaseVoid, tok.Span)
	case token.KwBool:
		p.advance()
		p.s.SetBase(ds, sema.BaseBool, tok.Span)
	case token.KwChar:
		p.advance()
		p.s.SetBase(ds, sema.BaseChar, tok.Span)
	case token.KwInt:
		p.advance()
		p.s.SetBase(ds, sema.BaseInt, tok.Span)
	case token.KwInt128:
		p.advance()
		p.s.SetBase(ds, sema.BaseInt128, tok.Span)
	case token.KwFloat:
		p.advance()
		p.s.SetBase(ds, sema.BaseFloat, tok.Span)
	case token.KwDouble:
		p.advance()
		p.s.SetBase(ds, sema.BaseDouble, tok.Span)
	case token.KwShort:
		p.advance()
		p.s.SetWidth(ds, sema.WidthShort, tok.Span)
	case token.KwLong:
		p.advance()
		p.s.SetWidth(ds, sema.WidthLong, tok.Span)
	case token.KwSigned:
		p.advance()
		p.s.SetSign(ds, sema.SignSigned, tok.Span)
	case token.KwUnsigned:
		p.advance()
		p.s.SetSign(ds, sema.SignUnsigned, tok.Span)
	case token.KwStruct, token.KwUnion, token.KwEnum:
		p.parseTagSpecifier(ds)
	case token.Ident:
		if ds.HasTypeSpecifier() {
			return false
		}
		if isTypeof(tok.Text) {
			p.parseTypeof(ds)
			return true
		}
		id, ok := p.s.LookupTypedef(tok.Text)
		if !ok {
			return false
		}
		p.advance()
		p.s.SetBase(ds, sema.BaseTypedef, tok.Span)
		ds.Named = id
	default:
		return false
	}
	return true
}

func (p *Parser) addQualifier(q *types.Qualifiers, tok token.Token) {
	var bit types.Qualifiers
	switch tok.Kind {
	case token.KwConst:
		bit = types.Const
	case token.KwVolatile:
		bit = types.Volatile
	case token.KwRestrict:
		bit = types.Restrict
	}
	if *q&bit != 0 {
		p.report(diag.SynDuplicateSpecifier, diag.SevWarning, tok.Span, "duplicate '"+tok.Kind.String()+"' declaration specifier")
	}
	*q |= bit
}

// parseTypeQualifiers: квалификаторы после '*'.
func (p *Parser) parseTypeQualifiers() types.Qualifiers {
	var q types.Qualifiers
	for {
		switch tok := p.peek(); tok.Kind {
		case token.KwConst, token.KwVolatile, token.KwRestrict:
			p.advance()
			p.addQualifier(&q, tok)
		case token.KwAttribute:
			p.skipAttributes()
		default:
			return q
		}
	}
}

// parseTypeof: GNU typeof(expr) и typeof(type).
func (p *Parser) parseTypeof(ds *sema.DeclSpec) {
	kw := p.advance()
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+kw.Text+"'")
	if !ok {
		return
	}
	var ty types.QualType
	if p.isTypeSpecStart(p.peek()) {
		ty, _, _ = p.parseTypeName()
	} else {
		if e, ok := p.parseExpr(); ok {
			ty = p.b.Stmts.Get(e).Type
		}
	}
	p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	if ds.HasTypeSpecifier() {
		p.report(diag.SynInvalidSpecifiers, diag.SevError, kw.Span, "cannot combine with previous type specifier")
		return
	}
	ds.TypeofType = ty
}

// parseTypeName: спецификаторы и абстрактный декларатор.
func (p *Parser) parseTypeName() (types.QualType, source.Span, bool) {
	start := p.peek().Span
	if !p.isTypeSpecStart(p.peek()) {
		p.err(diag.SynExpectType, "expected a type")
		return p.s.Types().Builtins().Q(types.Int), start, false
	}
	ds := p.parseDeclSpecs(specTypeName)
	d := p.parseDeclarator(declAbstract)
	return p.s.DeclaratorType(p.s.SpecType(ds), d), start.Cover(p.lastSpan), true
}
