package sema

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/literal"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// Initializer is an initializer as written: either a single expression or
// a brace-enclosed list.
type Initializer struct {
	Expr   ast.StmtID
	List   []InitItem
	Braced bool
	Span   source.Span
}

// InitItem is one element of a brace list with its designators.
type InitItem struct {
	Designators []Designator
	Init        *Initializer
}

// Designator is `.field` or `[index]`.
type Designator struct {
	IsField bool
	Field   source.StringID
	Index   ast.StmtID
	Span    source.Span
}

// initCursor walks the items of one brace list; nested aggregates without
// their own braces consume items from the same cursor.
type initCursor struct {
	items []InitItem
	pos   int
	// designators of items[pos] were already applied by an enclosing level
	designated bool
}

func (c *initCursor) done() bool { return c.pos >= len(c.items) }

func (c *initCursor) peek() *InitItem { return &c.items[c.pos] }

func (c *initCursor) advance() {
	c.pos++
	c.designated = false
}

func (c *initCursor) hasDesignators() bool {
	return !c.designated && len(c.items[c.pos].Designators) > 0
}

// CheckInitializer converts init for an object of type ty and returns the
// checked expression together with the completed object type.
func (s *Sema) CheckInitializer(ty types.QualType, init *Initializer, static bool) (ast.StmtID, types.QualType) {
	var e ast.StmtID
	switch {
	case !init.Braced && s.tys.IsArray(ty):
		if str := s.stringLiteral(init.Expr); str.IsValid() {
			e, ty = s.initString(ty, str)
			break
		}
		if !s.IsInvalid(init.Expr) {
			s.errorf(diag.SemaIncompatibleTypes, s.spanOf(init.Expr), "array initializer must be an initializer list")
		}
		return init.Expr, ty
	case !init.Braced:
		e = s.CheckAssignment(ty, init.Expr, AssignInitializing)
	case s.isAggregate(ty):
		c := &initCursor{items: init.List}
		e = s.initAggregate(ty, c, init.Span, true)
		ty = s.typeOf(e)
	default:
		e = s.initScalarList(ty, init)
	}
	if static && !s.IsInvalid(e) && !s.isConstantInit(e) {
		s.errorf(diag.SemaNotConstant, s.spanOf(e), "initializer element is not a compile-time constant")
	}
	return e, ty
}

// ActOnCompoundLiteral builds `(type){ ... }`.
func (s *Sema) ActOnCompoundLiteral(lparen source.Span, ty types.QualType, init *Initializer) ast.StmtID {
	span := lparen.Cover(init.Span)
	if s.tys.IsFunction(ty) {
		s.errorf(diag.SemaIncompatibleTypes, span, "compound literal has function type '%s'", s.spell(ty))
		return s.errorExpr(span)
	}
	if !s.tys.IsComplete(ty) && s.tys.KindOf(ty) != types.KindIncompleteArray {
		s.errorf(diag.SemaIncompleteType, span, "variable has incomplete type '%s'", s.spell(ty))
		return s.errorExpr(span)
	}
	fileScope := s.AtFileScope()
	e, full := s.CheckInitializer(ty, init, fileScope)
	return s.b.Stmts.NewCompoundLiteral(span, full, ast.CompoundLiteralData{Init: e, FileScope: fileScope})
}

func (s *Sema) isAggregate(ty types.QualType) bool {
	return s.tys.IsArray(ty) || s.tys.IsRecord(ty)
}

// stringLiteral returns e stripped of parentheses when it is a string literal.
func (s *Sema) stringLiteral(e ast.StmtID) ast.StmtID {
	for e.IsValid() {
		st := s.expr(e)
		switch st.Kind {
		case ast.ExprStringLiteral:
			return e
		case ast.ExprParen:
			e = s.b.Stmts.Unary(e).Sub
		default:
			return ast.NoStmtID
		}
	}
	return ast.NoStmtID
}

// initString initializes a character array from a string literal.
func (s *Sema) initString(ty types.QualType, str ast.StmtID) (ast.StmtID, types.QualType) {
	elem, _ := s.tys.Element(ty)
	lit := s.b.Stmts.String(str).Value
	esz, _ := s.tys.SizeOf(elem)
	narrow := lit.Encoding == literal.EncAscii || lit.Encoding == literal.EncUTF8
	switch {
	case !s.tys.IsInteger(elem):
		s.errorf(diag.SemaIncompatibleTypes, s.spanOf(str), "array initializer must be an initializer list")
		return str, ty
	case narrow && esz != 1:
		s.errorf(diag.SemaIncompatibleTypes, s.spanOf(str), "initializing wide char array with non-wide string literal")
		return str, ty
	case !narrow && esz == 1:
		s.errorf(diag.SemaIncompatibleTypes, s.spanOf(str), "initializing char array with wide string literal")
		return str, ty
	}
	n := uint64(lit.Len())
	tt, _ := s.tys.Underlying(ty)
	if tt.Kind == types.KindIncompleteArray {
		return str, s.tys.ConstantArray(elem, n+1).With(ty.Quals)
	}
	if tt.Count < n {
		s.warnf(diag.SemaExcessInitializers, s.spanOf(str), "initializer-string for char array is too long, array size is %d but initializer has size %d (including the null terminating character)", tt.Count, n+1)
	}
	return str, ty
}

// initScalarList handles `int x = {1}`.
func (s *Sema) initScalarList(ty types.QualType, init *Initializer) ast.StmtID {
	var inits []ast.StmtID
	if len(init.List) > 0 {
		first := init.List[0]
		if len(first.Designators) > 0 {
			s.errorf(diag.SemaIncompatibleTypes, first.Designators[0].Span, "designator in initializer for scalar type '%s'", s.spell(ty))
		}
		if first.Init.Braced {
			s.warnf(diag.SemaExcessInitializers, first.Init.Span, "too many braces around scalar initializer")
			inits = append(inits, s.initScalarList(ty, first.Init))
		} else {
			inits = append(inits, s.CheckAssignment(ty, first.Init.Expr, AssignInitializing))
		}
		if len(init.List) > 1 {
			s.warnf(diag.SemaExcessInitializers, s.itemSpan(&init.List[1]), "excess elements in scalar initializer")
		}
	}
	return s.b.Stmts.NewInitList(init.Span, ty.Unqualified(), inits)
}

func (s *Sema) itemSpan(it *InitItem) source.Span {
	if it.Init.Braced {
		return it.Init.Span
	}
	return s.spanOf(it.Init.Expr)
}

// initElement initializes one subobject of type ty from the cursor.
func (s *Sema) initElement(ty types.QualType, c *initCursor) ast.StmtID {
	it := c.peek()
	if it.Init.Braced {
		c.advance()
		if s.isAggregate(ty) {
			return s.initAggregate(ty, &initCursor{items: it.Init.List}, it.Init.Span, true)
		}
		return s.initScalarList(ty, it.Init)
	}
	e := it.Init.Expr
	if !s.isAggregate(ty) || s.IsInvalid(e) {
		c.advance()
		return s.CheckAssignment(ty, e, AssignInitializing)
	}
	if s.tys.IsArray(ty) {
		if str := s.stringLiteral(e); str.IsValid() {
			c.advance()
			e, _ = s.initString(ty, str)
			return e
		}
	}
	if s.tys.IsRecord(ty) && s.tys.Compatible(ty.Unqualified(), s.typeOf(e).Unqualified()) {
		c.advance()
		return s.CheckAssignment(ty, e, AssignInitializing)
	}
	// brace elision
	return s.initAggregate(ty, c, s.spanOf(e), false)
}

// initAggregate fills a record or array. braced is false for elided braces,
// in which case items are shared with the enclosing list.
func (s *Sema) initAggregate(ty types.QualType, c *initCursor, span source.Span, braced bool) ast.StmtID {
	if s.tys.IsRecord(ty) {
		return s.initRecord(ty, c, span, braced)
	}
	return s.initArray(ty, c, span, braced)
}

func (s *Sema) recordFields(ty types.QualType) (fields []ast.DeclID, union bool) {
	info, _ := s.tys.Tag(s.tys.Canonical(ty).ID)
	rec := ast.DeclID(info.Decl)
	for d := s.b.Decls.FirstChild(rec); d.IsValid(); d = s.b.Decls.NextSibling(d) {
		decl := s.b.Decls.Get(d)
		if decl.Kind != ast.DeclField {
			continue
		}
		if decl.Name == source.NoStringID && s.b.Decls.Field(d).BitWidth.IsValid() {
			continue
		}
		fields = append(fields, d)
	}
	return fields, info.Kind == types.TagUnion
}

func (s *Sema) initRecord(ty types.QualType, c *initCursor, span source.Span, braced bool) ast.StmtID {
	if !s.tys.IsComplete(ty) {
		s.errorf(diag.SemaIncompleteType, span, "variable has incomplete type '%s'", s.spell(ty))
		for !c.done() && braced {
			c.advance()
		}
		return s.errorExpr(span)
	}
	fields, union := s.recordFields(ty)
	inits := make([]ast.StmtID, len(fields))
	next, last := 0, -1
	for !c.done() {
		if c.hasDesignators() {
			if !braced {
				break
			}
			idx, ok := s.applyFieldDesignator(ty, fields, c)
			if !ok {
				continue
			}
			next = idx
		}
		if next >= len(fields) || (union && last >= 0 && !c.designated) {
			if braced {
				kind := "struct"
				if union {
					kind = "union"
				}
				s.warnf(diag.SemaExcessInitializers, s.itemSpan(c.peek()), "excess elements in %s initializer", kind)
				for !c.done() {
					c.advance()
				}
			}
			break
		}
		start := c.pos
		if union {
			clear(inits)
		}
		inits[next] = s.initElement(s.b.Decls.Get(fields[next]).Type, c)
		span = s.coverEnd(span, inits[next], braced)
		if c.pos == start {
			c.advance()
		}
		last = next
		next++
		if union && !braced {
			break
		}
	}
	if union {
		var one []ast.StmtID
		if last >= 0 {
			one = []ast.StmtID{inits[last]}
		}
		return s.b.Stmts.NewInitList(span, ty.Unqualified(), one)
	}
	for i, f := range fields {
		if !inits[i].IsValid() {
			inits[i] = s.b.Stmts.NewImplicitValueInit(source.Span{}, s.b.Decls.Get(f).Type.Unqualified())
		}
	}
	return s.b.Stmts.NewInitList(span, ty.Unqualified(), inits)
}

// coverEnd grows the span of an elided list to its last element.
func (s *Sema) coverEnd(span source.Span, e ast.StmtID, braced bool) source.Span {
	if braced || !e.IsValid() {
		return span
	}
	if sp := s.spanOf(e); sp.IsValid() {
		return span.Cover(sp)
	}
	return span
}

// applyFieldDesignator consumes `.name` designators. Nested designators
// beyond the first are applied to a synthesized single-item list.
func (s *Sema) applyFieldDesignator(ty types.QualType, fields []ast.DeclID, c *initCursor) (int, bool) {
	it := c.peek()
	d := it.Designators[0]
	if !d.IsField {
		s.errorf(diag.SemaIncompatibleTypes, d.Span, "array designator cannot initialize non-array type '%s'", s.spell(ty))
		c.advance()
		return 0, false
	}
	for i, f := range fields {
		if s.b.Decls.Get(f).Name == d.Field {
			s.descend(it)
			c.designated = true
			return i, true
		}
	}
	s.errorf(diag.SemaNoMember, d.Span, "field designator '%s' does not refer to any field in type '%s'", s.name(d.Field), s.spell(ty))
	c.advance()
	return 0, false
}

// descend rewrites `.a.b = x` into `.a = { .b = x }` so the remaining
// designators apply to the subobject.
func (s *Sema) descend(it *InitItem) {
	if len(it.Designators) < 2 {
		return
	}
	rest := InitItem{Designators: it.Designators[1:], Init: it.Init}
	sp := rest.Designators[0].Span.Cover(s.itemSpan(it))
	it.Init = &Initializer{List: []InitItem{rest}, Braced: true, Span: sp}
	it.Designators = it.Designators[:1]
}

func (s *Sema) initArray(ty types.QualType, c *initCursor, span source.Span, braced bool) ast.StmtID {
	elem, _ := s.tys.Element(ty)
	tt, _ := s.tys.Underlying(ty)
	known := tt.Kind == types.KindConstantArray
	var inits []ast.StmtID
	idx := uint64(0)
	for !c.done() {
		if c.hasDesignators() {
			if !braced {
				break
			}
			i, ok := s.applyIndexDesignator(ty, tt, c)
			if !ok {
				continue
			}
			idx = i
		}
		if known && idx >= tt.Count {
			if braced {
				s.warnf(diag.SemaExcessInitializers, s.itemSpan(c.peek()), "excess elements in array initializer")
				for !c.done() {
					c.advance()
				}
			}
			break
		}
		start := c.pos
		e := s.initElement(elem, c)
		if c.pos == start {
			c.advance()
		}
		for uint64(len(inits)) <= idx {
			inits = append(inits, ast.NoStmtID)
		}
		inits[idx] = e
		span = s.coverEnd(span, e, braced)
		idx++
	}
	for i, e := range inits {
		if !e.IsValid() {
			inits[i] = s.b.Stmts.NewImplicitValueInit(source.Span{}, elem.Unqualified())
		}
	}
	if !known {
		ty = s.tys.ConstantArray(elem, uint64(len(inits))).With(ty.Quals)
	}
	return s.b.Stmts.NewInitList(span, ty.Unqualified(), inits)
}

func (s *Sema) applyIndexDesignator(ty types.QualType, tt types.Type, c *initCursor) (uint64, bool) {
	it := c.peek()
	d := it.Designators[0]
	if d.IsField {
		s.errorf(diag.SemaIncompatibleTypes, d.Span, "field designator cannot initialize a non-struct, non-union type '%s'", s.spell(ty))
		c.advance()
		return 0, false
	}
	v, ok := s.EvaluateInt(d.Index)
	switch {
	case !ok:
		s.errorf(diag.SemaNotConstant, s.spanOf(d.Index), "expression is not an integer constant expression")
	case v.Negative():
		s.errorf(diag.SemaIncompatibleTypes, s.spanOf(d.Index), "array designator value '%d' is negative", v.Int64())
	case tt.Kind == types.KindConstantArray && v.Bits >= tt.Count:
		s.errorf(diag.SemaIncompatibleTypes, s.spanOf(d.Index), "array designator index (%d) exceeds array bounds (%d)", v.Bits, tt.Count)
	default:
		s.descend(it)
		c.designated = true
		return v.Bits, true
	}
	c.advance()
	return 0, false
}

// isConstantInit reports whether e may initialize an object with static
// storage duration: arithmetic constants, address constants and lists of
// those.
func (s *Sema) isConstantInit(e ast.StmtID) bool {
	st := s.expr(e)
	switch st.Kind {
	case ast.ExprInitList:
		l := s.b.Stmts.InitList(e).Inits
		for i := uint32(0); i < l.Count; i++ {
			if !s.isConstantInit(s.b.Stmts.ExprAt(l, i)) {
				return false
			}
		}
		return true
	case ast.ExprImplicitValueInit, ast.ExprStringLiteral:
		return true
	case ast.ExprCompoundLiteral:
		return s.isConstantInit(s.b.Stmts.CompoundLiteral(e).Init)
	}
	if s.tys.IsInteger(st.Type) {
		if _, ok := s.EvaluateInt(e); ok {
			return true
		}
	}
	if s.tys.IsFloating(st.Type) {
		if _, ok := s.evalFloat(e); ok {
			return true
		}
	}
	if s.tys.IsPointer(st.Type) || s.tys.IsInteger(st.Type) {
		return s.isAddressConstant(e)
	}
	return false
}

func (s *Sema) isAddressConstant(e ast.StmtID) bool {
	st := s.expr(e)
	switch st.Kind {
	case ast.ExprParen:
		return s.isAddressConstant(s.b.Stmts.Unary(e).Sub)
	case ast.ExprImplicitCast, ast.ExprCStyleCast:
		c := s.b.Stmts.Cast(e)
		switch c.Kind {
		case ast.CastArrayToPointerDecay, ast.CastFunctionToPointerDecay:
			return s.isStaticLValue(c.Sub)
		case ast.CastNullToPointer:
			return true
		}
		if s.tys.IsPointer(s.typeOf(c.Sub)) || c.Kind == ast.CastIntegralToPointer {
			return s.isAddressConstant(c.Sub) || s.isConstantInit(c.Sub)
		}
		return false
	case ast.ExprUnaryOperator:
		u := s.b.Stmts.Unary(e)
		return u.Op == ast.UnaryAddrOf && s.isStaticLValue(u.Sub)
	case ast.ExprBinaryOperator:
		b := s.b.Stmts.Binary(e)
		if b.Op != ast.BinaryAdd && b.Op != ast.BinarySub {
			return false
		}
		if s.tys.IsPointer(s.typeOf(b.LHS)) {
			_, ok := s.EvaluateInt(b.RHS)
			return ok && s.isAddressConstant(b.LHS)
		}
		_, ok := s.EvaluateInt(b.LHS)
		return ok && s.isAddressConstant(b.RHS)
	case ast.ExprStringLiteral:
		return true
	}
	return false
}

// isStaticLValue reports lvalues designating objects or functions with
// static storage duration.
func (s *Sema) isStaticLValue(e ast.StmtID) bool {
	st := s.expr(e)
	switch st.Kind {
	case ast.ExprParen:
		return s.isStaticLValue(s.b.Stmts.Unary(e).Sub)
	case ast.ExprDeclRef:
		d := s.b.Stmts.DeclRef(e).Decl
		if s.b.Decls.Function(d) != nil {
			return true
		}
		v := s.b.Decls.Var(d)
		return v != nil && s.b.Decls.Get(d).Kind == ast.DeclVar && (v.FileScope || v.Storage == ast.SCStatic || v.Storage == ast.SCExtern)
	case ast.ExprStringLiteral:
		return true
	case ast.ExprCompoundLiteral:
		return s.b.Stmts.CompoundLiteral(e).FileScope
	case ast.ExprMember:
		m := s.b.Stmts.Member(e)
		if m.Arrow {
			return s.isAddressConstant(m.Base)
		}
		return s.isStaticLValue(m.Base)
	case ast.ExprArraySubscript:
		sub := s.b.Stmts.Subscript(e)
		if _, ok := s.EvaluateInt(sub.RHS); !ok {
			return false
		}
		return s.isAddressConstant(sub.LHS)
	case ast.ExprUnaryOperator:
		u := s.b.Stmts.Unary(e)
		return u.Op == ast.UnaryDeref && s.isAddressConstant(u.Sub)
	}
	return false
}
