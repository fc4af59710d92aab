package types

import (
	"strconv"
	"strings"
)

// Spell renders q the way a C compiler prints types in diagnostics,
// e.g. "const char *" or "int (*)(int)".
func (in *Interner) Spell(q QualType) string {
	return in.spell(q, "")
}

// SpellCanonical renders q with all typedef sugar removed.
func (in *Interner) SpellCanonical(q QualType) string {
	return in.spell(in.Canonical(q), "")
}

func (in *Interner) spell(q QualType, inner string) string {
	tt, ok := in.Lookup(q.ID)
	if !ok {
		return joinSpace("<invalid>", inner)
	}
	switch tt.Kind {
	case KindPointer:
		s := "*"
		if q.Quals != 0 {
			s += q.Quals.String()
			if inner != "" {
				s += " "
			}
		}
		s += inner
		pk := KindInvalid
		if pt, ok := in.Lookup(tt.Elem.ID); ok {
			pk = pt.Kind
		}
		if isArrayKind(pk) || isFuncKind(pk) {
			s = "(" + s + ")"
		}
		return in.spell(tt.Elem, s)
	case KindConstantArray:
		return in.spell(tt.Elem.With(q.Quals), inner+"["+strconv.FormatUint(tt.Count, 10)+"]")
	case KindIncompleteArray:
		return in.spell(tt.Elem.With(q.Quals), inner+"[]")
	case KindFunctionNoProto:
		return in.spell(tt.Elem, inner+"()")
	case KindFunctionProto:
		fn := in.fns[tt.Payload]
		var sb strings.Builder
		sb.WriteString(inner)
		sb.WriteByte('(')
		for i, p := range fn.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(in.spell(p, ""))
		}
		switch {
		case fn.Variadic && len(fn.Params) > 0:
			sb.WriteString(", ...")
		case fn.Variadic:
			sb.WriteString("...")
		case len(fn.Params) == 0:
			sb.WriteString("void")
		}
		sb.WriteByte(')')
		return in.spell(fn.Result, sb.String())
	}
	base := in.baseName(tt)
	if q.Quals != 0 {
		base = q.Quals.String() + " " + base
	}
	return joinSpace(base, inner)
}

func (in *Interner) baseName(tt Type) string {
	switch tt.Kind {
	case KindBuiltin:
		return tt.Builtin.String()
	case KindRecord, KindEnum:
		info := in.tags[tt.Payload]
		if info.Name == "" {
			return info.Kind.String() + " (anonymous)"
		}
		return info.Kind.String() + " " + info.Name
	case KindTypedef:
		return in.typedefs[tt.Payload].Name
	}
	return "<invalid>"
}

func joinSpace(base, inner string) string {
	if inner == "" {
		return base
	}
	return base + " " + inner
}
