// Package query filters the nodes of a translation unit with expr-lang
// predicates such as
//
//	kind == "VarDecl" && name startsWith "g_"
//	"CastExpr" in classes && attrs["cast"] == "IntegralCast"
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"cbridge/cnode"
)

// Env is the environment a predicate is evaluated in, one per node.
type Env struct {
	ID       uint64            `expr:"id"`
	Kind     string            `expr:"kind"`
	Name     string            `expr:"name"`
	Type     string            `expr:"type"`
	Loc      string            `expr:"loc"`
	File     string            `expr:"file"`
	Line     uint32            `expr:"line"`
	Implicit bool              `expr:"implicit"`
	Attrs    map[string]string `expr:"attrs"`
	// Classes lists the node's class and every abstract class it belongs to,
	// e.g. ["Stmt", "Expr", "CastExpr", "ImplicitCastExpr"].
	Classes  []string `expr:"classes"`
	Depth    int      `expr:"depth"`
	Parent   string   `expr:"parent"`
	Children int      `expr:"children"`
}

// Query is a compiled predicate. It is safe for concurrent use.
type Query struct {
	src  string
	prog *vm.Program
}

// Compile type-checks src against Env; the result must be boolean.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return &Query{src: src, prog: prog}, nil
}

func (q *Query) String() string { return q.src }

// Eval runs the predicate against one environment.
func (q *Query) Eval(env Env) (bool, error) {
	out, err := expr.Run(q.prog, env)
	if err != nil {
		return false, fmt.Errorf("query %q: %w", q.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("query %q: result is %T, not bool", q.src, out)
	}
	return ok, nil
}

// Options bound a Run.
type Options struct {
	// MaxDepth stops descent below this depth; 0 means unlimited.
	MaxDepth int
	// Limit stops after this many matches; 0 means unlimited.
	Limit int
	// SkipImplicit prunes implicit nodes and their subtrees.
	SkipImplicit bool
}

// Match is one node accepted by a query.
type Match struct {
	Node  cnode.Node
	View  cnode.View
	Depth int
}

// Run walks root in pre-order and collects every node the query accepts.
// The walk stops early on ctx cancellation or an evaluation error.
func Run(ctx context.Context, q *Query, root cnode.Node, opts Options) ([]Match, error) {
	var (
		matches []Match
		runErr  error
		parents []string
	)
	cnode.Walk(root, func(n cnode.Node, depth int) bool {
		if runErr != nil {
			return false
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			return false
		}
		if opts.SkipImplicit && n.IsImplicit() && depth > 0 {
			return false
		}
		parents = parents[:depth]
		env := NewEnv(n, depth)
		if depth > 0 {
			env.Parent = parents[depth-1]
		}
		parents = append(parents, env.Kind)

		ok, err := q.Eval(env)
		if err != nil {
			runErr = err
			return false
		}
		if ok {
			matches = append(matches, Match{Node: n, View: cnode.NewView(n, 0), Depth: depth})
			if opts.Limit > 0 && len(matches) >= opts.Limit {
				runErr = errLimit
				return false
			}
		}
		return opts.MaxDepth == 0 || depth < opts.MaxDepth
	})
	if errors.Is(runErr, errLimit) {
		runErr = nil
	}
	return matches, runErr
}

var errLimit = errors.New("query: limit reached")

// NewEnv builds the environment of n; Parent is left for the caller.
func NewEnv(n cnode.Node, depth int) Env {
	v := cnode.NewView(n, 0)
	return Env{
		ID:       v.ID,
		Kind:     v.Kind,
		Name:     v.Name,
		Type:     v.Type,
		Loc:      v.Location,
		File:     v.File,
		Line:     v.Line,
		Implicit: v.Implicit,
		Attrs:    v.Attrs,
		Classes:  Classes(n),
		Depth:    depth,
		Children: len(n.Children()),
	}
}

// Classes returns the abstract classes n belongs to, outermost first,
// followed by its own class name.
func Classes(n cnode.Node) []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	switch n.Family() {
	case cnode.FamilyDecl:
		add(true, "Decl")
		add(cnode.Is[cnode.NamedDecl](n), "NamedDecl")
		add(cnode.Is[cnode.TypeDecl](n), "TypeDecl")
		add(cnode.Is[cnode.TagDecl](n), "TagDecl")
		add(cnode.Is[cnode.ValueDecl](n), "ValueDecl")
		add(cnode.Is[cnode.DeclaratorDecl](n), "DeclaratorDecl")
		add(cnode.Is[cnode.VarDecl](n), "VarDecl")
	case cnode.FamilyStmt:
		add(true, "Stmt")
		add(cnode.Is[cnode.SwitchCase](n), "SwitchCase")
		add(cnode.Is[cnode.Expr](n), "Expr")
		add(cnode.Is[cnode.CastExpr](n), "CastExpr")
		add(cnode.Is[cnode.ExplicitCastExpr](n), "ExplicitCastExpr")
		add(cnode.Is[cnode.BinaryOperator](n), "BinaryOperator")
	}
	name := cnode.ClassName(n)
	if len(out) == 0 || out[len(out)-1] != name {
		out = append(out, name)
	}
	return out
}
