package cnode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Formatter renders the one-line header of a node. Dump calls it in
// pre-order, so a Formatter may keep state between lines.
type Formatter interface {
	FormatNode(n Node) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(n Node) string

func (f FormatterFunc) FormatNode(n Node) string { return f(n) }

// Dump writes n and its descendants as an indented tree in the layout of
// clang -ast-dump. A nil f selects a fresh TextFormatter.
func Dump(w io.Writer, n Node, f Formatter) error {
	if f == nil {
		f = NewTextFormatter()
	}
	d := dumper{w: w, f: f}
	d.node(n, "", "")
	return d.err
}

// Dump is the package-level Dump applied to h.
func (h Handle) Dump(w io.Writer, f Formatter) error { return Dump(w, h, f) }

type dumper struct {
	w   io.Writer
	f   Formatter
	err error
}

func (d *dumper) node(n Node, lead, indent string) {
	if d.err != nil {
		return
	}
	if _, d.err = io.WriteString(d.w, lead+d.f.FormatNode(n)+"\n"); d.err != nil {
		return
	}
	kids := n.Children()
	for i, c := range kids {
		if i == len(kids)-1 {
			d.node(c, indent+"`-", indent+"  ")
		} else {
			d.node(c, indent+"|-", indent+"| ")
		}
	}
}

// TextFormatter prints clang-style headers:
//
//	VarDecl 0x100000003 <t.c:1:1, col:13> col:5 x 'int' cinit
//
// Locations are abbreviated against the previously printed one, as clang
// does. A TextFormatter must not be shared between concurrent dumps.
type TextFormatter struct {
	last SourceLocation
}

func NewTextFormatter() *TextFormatter { return &TextFormatter{} }

// ClassName is the clang class name: "VarDecl", "ImplicitCastExpr".
func ClassName(n Node) string {
	if n.Family() == FamilyDecl {
		return n.KindName() + "Decl"
	}
	return n.KindName()
}

func (f *TextFormatter) FormatNode(n Node) string {
	var sb strings.Builder
	sb.WriteString(ClassName(n))
	fmt.Fprintf(&sb, " %#x", n.ID())
	sb.WriteString(" " + f.formatRange(n))
	if n.Family() == FamilyDecl {
		if loc, ok := n.Location(); ok {
			sb.WriteString(" " + f.formatLoc(loc))
		}
	}
	if n.IsImplicit() {
		sb.WriteString(" implicit")
	}
	switch n.Family() {
	case FamilyDecl:
		declDetail(&sb, Decl{n.handle()})
	case FamilyStmt:
		stmtDetail(&sb, Stmt{n.handle()})
	}
	return sb.String()
}

func (f *TextFormatter) formatRange(n Node) string {
	r, ok := n.Range()
	if !ok {
		return "<<invalid sloc>>"
	}
	begin := f.formatLoc(r.Begin)
	if r.End == r.Begin {
		return "<" + begin + ">"
	}
	return "<" + begin + ", " + f.formatLoc(r.End) + ">"
}

func (f *TextFormatter) formatLoc(loc SourceLocation) string {
	var s string
	switch {
	case loc.Filename != f.last.Filename:
		s = loc.String()
	case loc.Line != f.last.Line:
		s = "line:" + strconv.FormatUint(uint64(loc.Line), 10) + ":" + strconv.FormatUint(uint64(loc.Column), 10)
	default:
		s = "col:" + strconv.FormatUint(uint64(loc.Column), 10)
	}
	f.last = loc
	return s
}

// quoteType renders 'T', or 'T':'canonical' when a typedef hides the
// canonical spelling.
func quoteType(t QualType) string {
	if t.IsNull() {
		return ""
	}
	s := t.String()
	if c := t.CanonicalString(); c != s {
		return "'" + s + "':'" + c + "'"
	}
	return "'" + s + "'"
}

func declDetail(sb *strings.Builder, d Decl) {
	if d.IsUsed() {
		sb.WriteString(" used")
	}
	switch x := d.Specific().(type) {
	case RecordDecl:
		sb.WriteString(" " + x.TagKindName())
		if name := x.Name(); name != "" {
			sb.WriteString(" " + name)
		}
		if x.IsCompleteDefinition() {
			sb.WriteString(" definition")
		}
	case EnumDecl:
		if name := x.Name(); name != "" {
			sb.WriteString(" " + name)
		}
	case TypedefDecl:
		sb.WriteString(" " + x.Name() + " " + quoteType(x.UnderlyingType()))
	case LabelDecl:
		sb.WriteString(" " + x.Name())
	case FunctionDecl:
		sb.WriteString(" " + x.Name() + " " + quoteType(x.Type()))
		if sc := x.StorageClass(); sc != SCNone {
			sb.WriteString(" " + sc.String())
		}
		if x.IsInline() {
			sb.WriteString(" inline")
		}
	case ParmVarDecl:
		if name := x.Name(); name != "" {
			sb.WriteString(" " + name)
		}
		sb.WriteString(" " + quoteType(x.Type()))
	case VarDecl:
		sb.WriteString(" " + x.Name() + " " + quoteType(x.Type()))
		if sc := x.StorageClass(); sc != SCNone {
			sb.WriteString(" " + sc.String())
		}
		if x.HasInit() {
			sb.WriteString(" cinit")
		}
	case FieldDecl:
		if name := x.Name(); name != "" {
			sb.WriteString(" " + name)
		}
		sb.WriteString(" " + quoteType(x.Type()))
	case EnumConstantDecl:
		sb.WriteString(" " + x.Name() + " " + quoteType(x.Type()))
	}
}

// declRef is the " Var 0x.. 'x' 'int'" suffix of nodes naming a decl.
func declRef(d Decl) string {
	if d.IsNull() {
		return ""
	}
	s := fmt.Sprintf(" %s %#x", d.KindName(), d.ID())
	if nd, ok := As[NamedDecl](d); ok {
		s += " '" + nd.Name() + "'"
	}
	if vd, ok := As[ValueDecl](d); ok {
		s += " " + quoteType(vd.Type())
	}
	return s
}

func stmtDetail(sb *strings.Builder, s Stmt) {
	if e, ok := As[Expr](s); ok {
		sb.WriteString(" " + quoteType(e.Type()))
		if e.IsLValue() {
			sb.WriteString(" lvalue")
		}
	}
	switch x := s.Specific().(type) {
	case IfStmt:
		if x.HasElseStorage() {
			sb.WriteString(" has_else")
		}
	case GotoStmt:
		l := x.Label()
		fmt.Fprintf(sb, " '%s' %#x", l.Name(), l.ID())
	case LabelStmt:
		sb.WriteString(" '" + x.Name() + "'")
	case IntegerLiteral:
		sb.WriteString(" " + x.Value().String())
	case FloatingLiteral:
		sb.WriteString(" " + strconv.FormatFloat(x.Value(), 'g', -1, 64))
	case CharacterLiteral:
		sb.WriteString(" " + strconv.FormatUint(uint64(x.Value()), 10))
	case StringLiteral:
		sb.WriteString(" " + strconv.Quote(x.String()))
	case PredefinedExpr:
		sb.WriteString(" " + x.IdentKindName())
	case DeclRefExpr:
		sb.WriteString(declRef(x.Decl().Decl))
	case UnaryOperator:
		if x.IsPostfix() {
			sb.WriteString(" postfix")
		} else {
			sb.WriteString(" prefix")
		}
		sb.WriteString(" '" + x.OpcodeStr() + "'")
	case CompoundAssignOperator:
		fmt.Fprintf(sb, " '%s' ComputeLHSTy=%s ComputeResultTy=%s",
			x.OpcodeStr(), quoteType(x.ComputationLHSType()), quoteType(x.ComputationResultType()))
	case BinaryOperator:
		sb.WriteString(" '" + x.OpcodeStr() + "'")
	case ImplicitCastExpr:
		sb.WriteString(" <" + x.CastKindName() + ">")
	case CStyleCastExpr:
		sb.WriteString(" <" + x.CastKindName() + ">")
	case MemberExpr:
		sep := "."
		if x.IsArrow() {
			sep = "->"
		}
		m := x.MemberDecl()
		fmt.Fprintf(sb, " %s%s %#x", sep, m.Name(), m.ID())
	case UnaryExprOrTypeTraitExpr:
		sb.WriteString(" " + x.TraitKind().String())
		if t, ok := x.ArgumentType(); ok {
			sb.WriteString(" " + quoteType(t))
		}
	case CompoundLiteralExpr:
		if x.IsFileScope() {
			sb.WriteString(" file_scope")
		}
	}
}
