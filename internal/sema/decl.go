package sema

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// builtinVaList returns the implicit __builtin_va_list typedef, creating it
// the first time it is referenced.
func (s *Sema) builtinVaList() ast.DeclID {
	if s.vaList.IsValid() {
		return s.vaList
	}
	name := s.b.Strings.Intern("__builtin_va_list")
	underlying := s.bi.Q(types.VaList)
	id := s.b.Decls.NewTypedef(source.Span{}, source.Span{}, name, ast.TypedefData{Underlying: underlying})
	d := s.b.Decls.Get(id)
	d.Flags |= ast.DeclImplicit
	d.Type = s.tys.NewTypedef("__builtin_va_list", uint32(id), underlying)
	s.b.Decls.AddToContext(s.b.TU, id)
	s.fileScope().ordinary[name] = id
	s.vaList = id
	return id
}

func (s *Sema) declSpan(ds *DeclSpec, d *Declarator) source.Span {
	sp := ds.Span
	if d.Span.IsValid() {
		sp = sp.Cover(d.Span)
	}
	if !sp.IsValid() {
		sp = d.NameSpan
	}
	return sp
}

// ActOnDeclarator creates the typedef, function or variable named by d and
// adds it to the current scope and decl context.
func (s *Sema) ActOnDeclarator(ds *DeclSpec, d *Declarator) ast.DeclID {
	ty := s.DeclaratorType(s.SpecType(ds), d)
	switch {
	case ds.Typedef:
		return s.actOnTypedef(ds, d, ty)
	case s.tys.IsFunction(ty):
		return s.actOnFunction(ds, d, ty)
	}
	return s.actOnVar(ds, d, ty)
}

func (s *Sema) actOnTypedef(ds *DeclSpec, d *Declarator, ty types.QualType) ast.DeclID {
	id := s.b.Decls.NewTypedef(d.NameSpan, s.declSpan(ds, d), d.Name, ast.TypedefData{Underlying: ty})
	s.b.Decls.Get(id).Type = s.tys.NewTypedef(s.name(d.Name), uint32(id), ty)
	if prev, ok := s.scope.ordinary[d.Name]; ok {
		pd := s.b.Decls.Get(prev)
		switch {
		case pd.Kind != ast.DeclTypedef:
			s.errorNote(diag.SemaRedefinition, d.NameSpan, "redefinition of '"+s.name(d.Name)+"' as different kind of symbol", prev)
		case !s.tys.Same(s.b.Decls.Typedef(prev).Underlying, ty):
			s.errorNote(diag.SemaRedefinition, d.NameSpan, "typedef redefinition with different types ('"+s.spell(ty)+"' vs '"+s.spell(s.b.Decls.Typedef(prev).Underlying)+"')", prev)
		default:
			s.b.Decls.Get(id).Prev = prev
		}
	}
	s.addToContext(id)
	s.scope.ordinary[d.Name] = id
	return id
}

func (s *Sema) actOnFunction(ds *DeclSpec, d *Declarator, ty types.QualType) ast.DeclID {
	switch ds.Storage {
	case ast.SCAuto, ast.SCRegister:
		s.errorf(diag.SemaInvalidStorageClass, ds.StorageSpan, "illegal storage class on function")
	case ast.SCStatic:
		if !s.AtFileScope() {
			s.errorf(diag.SemaInvalidStorageClass, ds.StorageSpan, "function declared in block scope cannot have 'static' storage class")
		}
	}
	data := ast.FunctionData{Storage: ds.Storage, Inline: ds.Inline}
	var params []ast.DeclID
	if ch := d.FunctionChunk(); ch != nil {
		params = ch.Params
		data.HasPrototype = ch.HasProto
	} else {
		params = s.implicitParams(ty, d.NameSpan)
		_, data.HasPrototype = s.tys.FnInfo(s.tys.Canonical(ty).ID)
	}
	id := s.b.Decls.NewFunction(d.NameSpan, s.declSpan(ds, d), d.Name, ty, data)
	s.b.Decls.Function(id).Params = s.b.Decls.AddParams(params)
	for _, p := range params {
		s.b.Decls.AddToContext(id, p)
	}

	if prev, _ := s.lookupOrdinary(d.Name); prev.IsValid() {
		s.mergeFunction(id, prev)
	}
	s.addToContext(id)
	s.scope.ordinary[d.Name] = id
	if !s.AtFileScope() {
		if _, ok := s.fileScope().ordinary[d.Name]; !ok {
			s.fileScope().ordinary[d.Name] = id
		}
	}
	return id
}

// implicitParams synthesizes unnamed parameters for a function declared
// through a typedef of function type.
func (s *Sema) implicitParams(ty types.QualType, sp source.Span) []ast.DeclID {
	info, ok := s.tys.FnInfo(s.tys.Canonical(ty).ID)
	if !ok {
		return nil
	}
	out := make([]ast.DeclID, len(info.Params))
	for i, pt := range info.Params {
		p := s.b.Decls.NewVar(ast.DeclParmVar, sp, sp, source.NoStringID, pt, ast.VarData{Index: uint32(i)}) //nolint:gosec // G115: parameter count is small.
		s.b.Decls.Get(p).Flags |= ast.DeclImplicit
		out[i] = p
	}
	return out
}

func (s *Sema) mergeFunction(id, prev ast.DeclID) {
	nd, pd := s.b.Decls.Get(id), s.b.Decls.Get(prev)
	name := s.name(nd.Name)
	if pd.Kind != ast.DeclFunction {
		if s.scopeOf(prev) == s.scope {
			s.errorNote(diag.SemaRedefinition, nd.Loc, "redefinition of '"+name+"' as different kind of symbol", prev)
		}
		return
	}
	if !s.tys.Compatible(nd.Type, pd.Type) {
		if pd.IsImplicit() {
			s.errorf(diag.SemaConflictingTypes, nd.Loc, "conflicting types for '%s'", name)
		} else {
			s.errorNote(diag.SemaConflictingTypes, nd.Loc, "conflicting types for '"+name+"'", prev)
		}
		return
	}
	nd.Prev = prev
	nf, pf := s.b.Decls.Function(id), s.b.Decls.Function(prev)
	if nf.Storage == ast.SCNone && pf.Storage == ast.SCStatic {
		nf.Storage = ast.SCStatic
	}
	// прототип сильнее объявления без параметров
	if !nf.HasPrototype && pf.HasPrototype {
		nd.Type = pd.Type
	}
	if pf.Body.IsValid() {
		nf.Body = ast.NoStmtID
	}
}

// scopeOf finds the scope that binds decl, if any.
func (s *Sema) scopeOf(decl ast.DeclID) *Scope {
	name := s.b.Decls.Get(decl).Name
	for sc := s.scope; sc != nil; sc = sc.parent {
		if sc.ordinary[name] == decl {
			return sc
		}
	}
	return nil
}

// definitionOf walks the redeclaration chain for a function with a body.
func (s *Sema) definitionOf(fn ast.DeclID) ast.DeclID {
	for d := fn; d.IsValid(); d = s.b.Decls.Get(d).Prev {
		if f := s.b.Decls.Function(d); f != nil && f.Body.IsValid() {
			return d
		}
	}
	return ast.NoDeclID
}

func (s *Sema) actOnVar(ds *DeclSpec, d *Declarator, ty types.QualType) ast.DeclID {
	fileScope := s.AtFileScope()
	if fileScope && (ds.Storage == ast.SCAuto || ds.Storage == ast.SCRegister) {
		s.errorf(diag.SemaInvalidStorageClass, ds.StorageSpan, "illegal storage class on file-scoped variable")
	}
	if ds.Inline {
		s.errorf(diag.SemaInvalidStorageClass, ds.Span, "'inline' can only appear on functions")
	}
	if s.tys.IsVoid(ty) {
		s.errorf(diag.SemaIncompleteType, d.NameSpan, "variable has incomplete type 'void'")
	}
	data := ast.VarData{Storage: ds.Storage, FileScope: fileScope}
	id := s.b.Decls.NewVar(ast.DeclVar, d.NameSpan, s.declSpan(ds, d), d.Name, ty, data)

	if prev, sc := s.lookupOrdinary(d.Name); prev.IsValid() {
		s.mergeVar(id, prev, sc, ds.Storage)
	}
	s.addToContext(id)
	s.scope.ordinary[d.Name] = id
	return id
}

func (s *Sema) mergeVar(id, prev ast.DeclID, sc *Scope, storage ast.StorageClass) {
	nd, pd := s.b.Decls.Get(id), s.b.Decls.Get(prev)
	name := s.name(nd.Name)
	linkage := sc.kind == ScopeFile || storage == ast.SCExtern
	if sc != s.scope && !(storage == ast.SCExtern && pd.Kind == ast.DeclVar) {
		return // shadowing
	}
	if pd.Kind != ast.DeclVar {
		if sc == s.scope {
			s.errorNote(diag.SemaRedefinition, nd.Loc, "redefinition of '"+name+"' as different kind of symbol", prev)
		}
		return
	}
	if sc == s.scope && !linkage {
		s.errorNote(diag.SemaRedefinition, nd.Loc, "redefinition of '"+name+"'", prev)
		return
	}
	if !s.tys.Compatible(nd.Type, pd.Type) {
		s.errorNote(diag.SemaRedefinition, nd.Loc, "redefinition of '"+name+"' with a different type: '"+s.spell(nd.Type)+"' vs '"+s.spell(pd.Type)+"'", prev)
		return
	}
	nd.Prev = prev
	if s.tys.KindOf(nd.Type) == types.KindIncompleteArray && s.tys.KindOf(pd.Type) == types.KindConstantArray {
		nd.Type = pd.Type
	}
	if pv := s.b.Decls.Var(prev); pv.Init.IsValid() {
		s.b.Decls.Var(id).Storage = mergeStorage(s.b.Decls.Var(id).Storage, pv.Storage)
	}
}

func mergeStorage(cur, prev ast.StorageClass) ast.StorageClass {
	if cur == ast.SCNone && prev == ast.SCStatic {
		return ast.SCStatic
	}
	return cur
}

// ActOnUninitialized validates a variable declared without an initializer.
func (s *Sema) ActOnUninitialized(id ast.DeclID) {
	d := s.b.Decls.Get(id)
	if d.Kind != ast.DeclVar {
		return
	}
	v := s.b.Decls.Var(id)
	if v.FileScope || v.Storage == ast.SCExtern {
		return
	}
	switch {
	case s.tys.KindOf(d.Type) == types.KindIncompleteArray:
		s.errorf(diag.SemaIncompleteType, d.Loc, "definition of variable with array type needs an explicit size or an initializer")
	case !s.tys.IsVoid(d.Type) && !s.tys.IsComplete(d.Type):
		s.errorf(diag.SemaIncompleteType, d.Loc, "variable has incomplete type '%s'", s.spell(d.Type))
	}
}

// ActOnInitializer checks init against the variable and stores it.
func (s *Sema) ActOnInitializer(id ast.DeclID, init *Initializer) {
	d := s.b.Decls.Get(id)
	switch d.Kind {
	case ast.DeclVar:
	case ast.DeclTypedef:
		s.errorf(diag.SemaIncompatibleTypes, init.Span, "illegal initializer (only variables can be initialized)")
		return
	default:
		s.errorf(diag.SemaIncompatibleTypes, d.Loc, "illegal initializer")
		return
	}
	v := s.b.Decls.Var(id)
	if v.Storage == ast.SCExtern && !v.FileScope {
		s.errorf(diag.SemaInvalidStorageClass, d.Loc, "declaration of block scope identifier with linkage cannot have an initializer")
	}
	if !s.tys.IsComplete(d.Type) && s.tys.KindOf(d.Type) != types.KindIncompleteArray {
		s.errorf(diag.SemaIncompleteType, d.Loc, "variable has incomplete type '%s'", s.spell(d.Type))
		return
	}
	for p := d.Prev; p.IsValid(); p = s.b.Decls.Get(p).Prev {
		if pv := s.b.Decls.Var(p); pv != nil && pv.Init.IsValid() {
			s.errorNote(diag.SemaRedefinition, d.Loc, "redefinition of '"+s.name(d.Name)+"'", p)
			break
		}
	}
	e, ty := s.CheckInitializer(d.Type, init, v.FileScope || v.Storage == ast.SCStatic)
	v.Init = e
	d.Type = ty
}

// ActOnParam creates a parameter; array and function types decay.
func (s *Sema) ActOnParam(ds *DeclSpec, d *Declarator, index int) ast.DeclID {
	if ds.Storage != ast.SCNone && ds.Storage != ast.SCRegister {
		s.errorf(diag.SemaInvalidStorageClass, ds.StorageSpan, "invalid storage class specifier in function declarator")
	}
	ty := s.DeclaratorType(s.SpecType(ds), d)
	if ch := lastArray(d); ch != nil && ch.Quals != 0 {
		ty = s.tys.DecayedParam(ty).With(ch.Quals)
	} else {
		ty = s.tys.DecayedParam(ty)
	}
	loc := d.NameSpan
	if !loc.IsValid() {
		loc = ds.Span.ZeroideToEnd()
	}
	data := ast.VarData{Storage: ds.Storage, Index: uint32(index)} //nolint:gosec // G115: parameter count is small.
	id := s.b.Decls.NewVar(ast.DeclParmVar, loc, s.declSpan(ds, d), d.Name, ty, data)
	if d.Name != source.NoStringID {
		if prev, ok := s.scope.ordinary[d.Name]; ok && s.scope.kind == ScopePrototype {
			s.errorNote(diag.SemaRedefinition, d.NameSpan, "redefinition of parameter '"+s.name(d.Name)+"'", prev)
		}
		s.scope.ordinary[d.Name] = id
	}
	return id
}

func lastArray(d *Declarator) *Chunk {
	if len(d.Chunks) == 0 || d.Chunks[len(d.Chunks)-1].Kind != ChunkArray {
		return nil
	}
	return &d.Chunks[len(d.Chunks)-1]
}

// ActOnKRParam creates an int parameter for a K&R identifier list.
func (s *Sema) ActOnKRParam(name source.StringID, sp source.Span, index int) ast.DeclID {
	data := ast.VarData{Index: uint32(index)} //nolint:gosec // G115: parameter count is small.
	return s.b.Decls.NewVar(ast.DeclParmVar, sp, sp, name, s.bi.Q(types.Int), data)
}

// ActOnKRParamDecl applies a declaration from a K&R declaration list to
// the matching identifier-list parameter.
func (s *Sema) ActOnKRParamDecl(params []ast.DeclID, ds *DeclSpec, d *Declarator) {
	for _, p := range params {
		pd := s.b.Decls.Get(p)
		if pd.Name == d.Name {
			pd.Type = s.tys.DecayedParam(s.DeclaratorType(s.SpecType(ds), d))
			pd.Span = s.declSpan(ds, d)
			return
		}
	}
	s.errorf(diag.SynParamListMismatch, d.NameSpan, "parameter named '%s' is missing", s.name(d.Name))
}

// ActOnStartFunctionBody opens the function scope with the parameters.
func (s *Sema) ActOnStartFunctionBody(fn ast.DeclID) {
	d := s.b.Decls.Get(fn)
	if prev := s.definitionOf(d.Prev); prev.IsValid() {
		s.errorNote(diag.SemaRedefinition, d.Loc, "redefinition of '"+s.name(d.Name)+"'", prev)
	}
	result, _ := s.tys.Result(d.Type)
	if !s.tys.IsVoid(result) && !s.tys.IsComplete(result) {
		s.errorf(diag.SemaIncompleteType, d.Loc, "incomplete result type '%s' in function definition", s.spell(result))
	}
	s.PushScope(ScopeBlock)
	f := s.b.Decls.Function(fn)
	for i := uint32(0); i < f.Params.Count; i++ {
		p := s.b.Decls.Param(f.Params, i)
		pd := s.b.Decls.Get(p)
		if pd.Name == source.NoStringID {
			if !pd.IsImplicit() && s.opts.Standard != StdC23 {
				s.warnf(diag.SynExpectIdentifier, pd.Span, "omitting the parameter name in a function definition is a C23 extension")
			}
			continue
		}
		s.scope.ordinary[pd.Name] = p
	}
	s.fn = &funcState{
		decl:   fn,
		result: result,
		labels: make(map[source.StringID]ast.DeclID),
	}
	s.curCtx = fn
}

// ActOnFinishFunctionBody attaches body and resolves labels.
func (s *Sema) ActOnFinishFunctionBody(fn ast.DeclID, body ast.StmtID) {
	d := s.b.Decls.Get(fn)
	s.b.Decls.Function(fn).Body = body
	d.Span = d.Span.Cover(s.spanOf(body))
	if s.fn != nil {
		for _, g := range s.fn.gotos {
			if !s.b.Decls.Label(g.label).Stmt.IsValid() {
				s.errorf(diag.SemaUndeclaredLabel, g.span, "use of undeclared label '%s'", s.b.Name(g.label))
			}
		}
	}
	s.fn = nil
	s.curCtx = s.b.TU
	s.PopScope()
}

// ActOnStaticAssert evaluates _Static_assert.
func (s *Sema) ActOnStaticAssert(span source.Span, cond, msg ast.StmtID) ast.DeclID {
	id := s.b.Decls.NewStaticAssert(span, ast.StaticAssertData{Cond: cond, Message: msg})
	s.addToContext(id)
	if s.IsInvalid(cond) {
		return id
	}
	v, ok := s.EvaluateInt(cond)
	switch {
	case !ok:
		s.errorf(diag.SemaNotConstant, s.spanOf(cond), "static assertion expression is not an integral constant expression")
	case v.Bits == 0:
		text := ""
		if msg.IsValid() {
			text = ": " + s.b.Stmts.String(msg).Value.Text()
		}
		s.errorf(diag.SemaStaticAssertFailed, s.spanOf(cond), "static assertion failed%s", text)
	}
	return id
}
