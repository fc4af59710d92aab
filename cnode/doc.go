// Package cnode parses a preprocessed C translation unit and exposes its
// syntax tree as typed, read-only handles.
//
// A Unit owns every node reachable from it. Nodes are addressed by small
// comparable handles (unit, arena, index); kind-specific handle types such as
// VarDecl or BinaryOperator embed their supertype, so the class lattice is
// mirrored by embedding and an up-cast is a field selection:
//
//	u, err := cnode.Parse(ctx, []string{"a.c", "-std=c11"})
//	if err != nil {
//		return err
//	}
//	defer u.Close()
//	for _, d := range u.Decls() {
//		if v, ok := cnode.As[cnode.VarDecl](d); ok {
//			fmt.Println(v.Name(), v.Type())
//		}
//	}
//
// Moving from a generic handle to a specific one goes through As, which
// checks the runtime kind once; accessors on a specific handle never check it
// again. Optional children come back as (T, bool) pairs, lists as slices in
// source order, integer literals as Int and locations as SourceLocation.
//
// Handles are valid until Unit.Close; using one afterwards panics with a
// *MisuseError. A Unit may be traversed from many goroutines at once as long
// as nobody closes it meanwhile.
package cnode
