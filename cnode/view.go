package cnode

import (
	"strconv"
)

// View is a detached, serializable snapshot of a node. Unlike handles it
// stays usable after the Unit is closed.
type View struct {
	ID       uint64            `json:"id" yaml:"id" expr:"id"`
	Kind     string            `json:"kind" yaml:"kind" expr:"kind"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty" expr:"name"`
	Type     string            `json:"type,omitempty" yaml:"type,omitempty" expr:"type"`
	Location string            `json:"loc,omitempty" yaml:"loc,omitempty" expr:"loc"`
	File     string            `json:"-" yaml:"-" expr:"file"`
	Line     uint32            `json:"-" yaml:"-" expr:"line"`
	Implicit bool              `json:"implicit,omitempty" yaml:"implicit,omitempty" expr:"implicit"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" expr:"attrs"`
	Children []View            `json:"children,omitempty" yaml:"children,omitempty" expr:"-"`
}

// NewView snapshots n and depth levels of descendants; a negative depth
// takes the whole subtree.
func NewView(n Node, depth int) View {
	v := View{
		ID:       n.ID(),
		Kind:     ClassName(n),
		Implicit: n.IsImplicit(),
	}
	if loc, ok := n.Location(); ok {
		v.Location = loc.String()
		v.File = loc.Filename
		v.Line = loc.Line
	}
	attrs := map[string]string{}
	switch n.Family() {
	case FamilyDecl:
		d := Decl{n.handle()}
		if nd, ok := As[NamedDecl](d); ok {
			v.Name = nd.Name()
		}
		if vd, ok := As[ValueDecl](d); ok {
			v.Type = vd.Type().String()
		}
		declAttrs(attrs, d)
	case FamilyStmt:
		s := Stmt{n.handle()}
		if e, ok := As[Expr](s); ok {
			v.Type = e.Type().String()
			attrs["category"] = "rvalue"
			if e.IsLValue() {
				attrs["category"] = "lvalue"
			}
		}
		v.Name = stmtAttrs(attrs, s)
	}
	if len(attrs) > 0 {
		v.Attrs = attrs
	}
	if depth != 0 {
		for _, c := range n.Children() {
			v.Children = append(v.Children, NewView(c, depth-1))
		}
	}
	return v
}

func declAttrs(attrs map[string]string, d Decl) {
	if d.IsUsed() {
		attrs["used"] = "true"
	}
	switch x := d.Specific().(type) {
	case TypedefDecl:
		attrs["underlying"] = x.UnderlyingType().String()
	case RecordDecl:
		attrs["tag"] = x.TagKindName()
		attrs["complete"] = strconv.FormatBool(x.IsCompleteDefinition())
	case EnumDecl:
		attrs["complete"] = strconv.FormatBool(x.IsCompleteDefinition())
		attrs["int_type"] = x.IntegerType().String()
	case EnumConstantDecl:
		attrs["value"] = x.Value().String()
	case FieldDecl:
		if w, ok := x.BitWidthValue(); ok {
			attrs["bit_width"] = strconv.FormatUint(uint64(w), 10)
		}
	case FunctionDecl:
		attrs["storage"] = x.StorageClass().String()
		attrs["definition"] = strconv.FormatBool(x.IsDefinition())
		if x.IsVariadic() {
			attrs["variadic"] = "true"
		}
		if x.IsInline() {
			attrs["inline"] = "true"
		}
	case ParmVarDecl:
		attrs["index"] = strconv.Itoa(x.Index())
	case VarDecl:
		attrs["storage"] = x.StorageClass().String()
		attrs["file_scope"] = strconv.FormatBool(x.IsFileScope())
		if x.HasInit() {
			attrs["init"] = "true"
		}
	}
}

// stmtAttrs fills attrs and returns the name a statement refers to, if any.
func stmtAttrs(attrs map[string]string, s Stmt) string {
	switch x := s.Specific().(type) {
	case IntegerLiteral:
		attrs["value"] = x.Value().String()
	case FloatingLiteral:
		attrs["value"] = strconv.FormatFloat(x.Value(), 'g', -1, 64)
	case CharacterLiteral:
		attrs["value"] = strconv.FormatUint(uint64(x.Value()), 10)
		attrs["encoding"] = x.CharKind().String()
	case StringLiteral:
		attrs["value"] = x.String()
		attrs["encoding"] = x.StringKind().String()
	case PredefinedExpr:
		return x.IdentKindName()
	case DeclRefExpr:
		d := x.Decl()
		attrs["decl_kind"] = d.KindName()
		return d.Name()
	case UnaryOperator:
		attrs["opcode"] = x.OpcodeStr()
		attrs["postfix"] = strconv.FormatBool(x.IsPostfix())
	case CompoundAssignOperator:
		attrs["opcode"] = x.OpcodeStr()
	case BinaryOperator:
		attrs["opcode"] = x.OpcodeStr()
	case ImplicitCastExpr:
		attrs["cast"] = x.CastKindName()
	case CStyleCastExpr:
		attrs["cast"] = x.CastKindName()
	case MemberExpr:
		attrs["arrow"] = strconv.FormatBool(x.IsArrow())
		return x.MemberDecl().Name()
	case UnaryExprOrTypeTraitExpr:
		attrs["trait"] = x.TraitKind().String()
	case CallExpr:
		attrs["args"] = strconv.Itoa(x.NumArgs())
		if f, ok := x.DirectCallee(); ok {
			return f.Name()
		}
	case GotoStmt:
		return x.Label().Name()
	case LabelStmt:
		return x.Name()
	case CompoundStmt:
		attrs["size"] = strconv.Itoa(x.Size())
	case IfStmt:
		attrs["has_else"] = strconv.FormatBool(x.HasElseStorage())
	}
	return ""
}
