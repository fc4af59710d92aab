package cnode

import "cbridge/internal/ast"

// children collects present nodes as their most specific handles.
type children []Node

func (c *children) add(n Node) {
	if n == nil || n.handle().IsNull() {
		return
	}
	*c = append(*c, specific(n.handle()))
}

func (c *children) opt(n Node, ok bool) {
	if ok {
		c.add(n)
	}
}

func declChildren(d Decl) []Node {
	var out children
	switch d.Kind() {
	case KindTranslationUnitDecl, KindRecordDecl, KindEnumDecl:
		for _, sub := range contextDecls(d.Handle, "Children") {
			out.add(sub)
		}
	case KindFunctionDecl:
		f := FunctionDecl{}.wrap(d.Handle)
		for _, p := range f.Params() {
			out.add(p)
		}
		out.opt(f.Body())
	case KindVarDecl, KindParmVarDecl:
		out.opt(VarDecl{}.wrap(d.Handle).Init())
	case KindFieldDecl:
		out.opt(FieldDecl{}.wrap(d.Handle).BitWidth())
	case KindEnumConstantDecl:
		out.opt(EnumConstantDecl{}.wrap(d.Handle).InitExpr())
	case KindStaticAssertDecl:
		s := StaticAssertDecl{}.wrap(d.Handle)
		out.add(s.AssertExpr())
		out.opt(s.Message())
	}
	return out
}

func stmtChildren(s Stmt) []Node {
	b, n := s.stmt("Children")
	u, id := s.unit, s.stmtID()
	var out children
	stmt := func(sid ast.StmtID) { out.add(stmtOf(u, sid)) }

	switch n.Kind {
	case ast.StmtCompound:
		for _, sub := range (CompoundStmt{s}).Body() {
			out.add(sub)
		}
	case ast.StmtDecl:
		for _, d := range (DeclStmt{s}).Decls() {
			out.add(d)
		}
	case ast.StmtIf:
		data := b.Stmts.If(id)
		stmt(data.Cond)
		stmt(data.Then)
		stmt(data.Else)
	case ast.StmtWhile, ast.StmtSwitch:
		data := b.Stmts.Loop(id)
		stmt(data.Cond)
		stmt(data.Body)
	case ast.StmtDo:
		data := b.Stmts.Loop(id)
		stmt(data.Body)
		stmt(data.Cond)
	case ast.StmtFor:
		data := b.Stmts.Loop(id)
		stmt(data.Init)
		stmt(data.Cond)
		stmt(data.Inc)
		stmt(data.Body)
	case ast.StmtCase, ast.StmtDefault:
		data := b.Stmts.Case(id)
		stmt(data.LHS)
		stmt(data.RHS)
		stmt(data.Sub)
	case ast.StmtLabel:
		stmt(b.Stmts.LabelStmt(id).Sub)
	case ast.StmtReturn:
		stmt(b.Stmts.Return(id).Value)
	case ast.ExprPredefined:
		stmt(b.Stmts.Predefined(id).Name)
	case ast.ExprParen, ast.ExprUnaryOperator, ast.ExprStmt:
		stmt(b.Stmts.Unary(id).Sub)
	case ast.ExprBinaryOperator, ast.ExprCompoundAssignOperator:
		data := b.Stmts.Binary(id)
		stmt(data.LHS)
		stmt(data.RHS)
	case ast.ExprConditionalOperator:
		data := b.Stmts.Conditional(id)
		stmt(data.Cond)
		stmt(data.True)
		stmt(data.False)
	case ast.ExprImplicitCast, ast.ExprCStyleCast:
		stmt(b.Stmts.Cast(id).Sub)
	case ast.ExprCall:
		data := b.Stmts.Call(id)
		stmt(data.Callee)
		for _, arg := range exprList(u, b, data.Args) {
			out.add(arg)
		}
	case ast.ExprMember:
		stmt(b.Stmts.Member(id).Base)
	case ast.ExprArraySubscript:
		data := b.Stmts.Subscript(id)
		stmt(data.LHS)
		stmt(data.RHS)
	case ast.ExprInitList:
		for _, init := range exprList(u, b, b.Stmts.InitList(id).Inits) {
			out.add(init)
		}
	case ast.ExprUnaryExprOrTypeTrait:
		stmt(b.Stmts.Trait(id).ArgExpr)
	case ast.ExprVAArg:
		stmt(b.Stmts.VAArg(id).Sub)
	case ast.ExprCompoundLiteral:
		stmt(b.Stmts.CompoundLiteral(id).Init)
	}
	return out
}

// Walk visits n and its descendants depth-first in source order. depth is
// 0 for n. Returning false from fn skips the children of that node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	if n == nil || n.handle().IsNull() {
		return
	}
	walk(specific(n.handle()), 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}

// Inspect is Walk without depth, in the style of go/ast.Inspect.
func Inspect(n Node, fn func(Node) bool) {
	Walk(n, func(n Node, _ int) bool { return fn(n) })
}
