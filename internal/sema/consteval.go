package sema

import (
	"math/big"

	"cbridge/internal/apint"
	"cbridge/internal/ast"
	"cbridge/internal/types"
)

// Value is an evaluated integer constant. Bits holds the value sign- or
// zero-extended to 64 bits according to Unsigned.
type Value struct {
	Bits     uint64
	Unsigned bool
}

// Negative reports a signed value below zero.
func (v Value) Negative() bool { return !v.Unsigned && int64(v.Bits) < 0 }

// Int64 returns the value as a signed integer.
func (v Value) Int64() int64 { return int64(v.Bits) }

// APInt converts the value to a fixed-width integer.
func (v Value) APInt(width uint32) apint.APInt {
	if v.Unsigned {
		return apint.FromUint64(64, v.Bits).Trunc(width)
	}
	return apint.FromInt64(64, int64(v.Bits)).Trunc(width)
}

func (s *Sema) normalize(bits uint64, ty types.QualType) Value {
	width := s.tys.BitWidth(ty)
	if width == 0 || width > 64 {
		width = 64
	}
	if width < 64 {
		bits &= (uint64(1) << width) - 1
	}
	signed := s.tys.IsSigned(ty)
	if signed && width < 64 && bits&(uint64(1)<<(width-1)) != 0 {
		bits |= ^uint64(0) << width
	}
	if s.tys.BuiltinOf(ty) == types.Bool && bits != 0 {
		bits = 1
	}
	return Value{Bits: bits, Unsigned: !signed}
}

func boolValue(b bool) Value {
	if b {
		return Value{Bits: 1}
	}
	return Value{}
}

// EvaluateInt folds an integer constant expression.
func (s *Sema) EvaluateInt(id ast.StmtID) (Value, bool) {
	st := s.b.Stmts.Get(id)
	if st == nil {
		return Value{}, false
	}
	switch st.Kind {
	case ast.ExprIntegerLiteral:
		v := s.b.Stmts.Integer(id).Value
		return s.normalize(v.Trunc(64).ZExtValue(), st.Type), true
	case ast.ExprCharacterLiteral:
		return s.normalize(uint64(s.b.Stmts.Char(id).Value), st.Type), true
	case ast.ExprDeclRef:
		d := s.b.Stmts.DeclRef(id).Decl
		if ec := s.b.Decls.EnumConstant(d); ec != nil {
			return s.normalize(uint64(ec.Value.SExtValue()), st.Type), true
		}
		return Value{}, false
	case ast.ExprParen:
		return s.EvaluateInt(s.b.Stmts.Unary(id).Sub)
	case ast.ExprImplicitCast, ast.ExprCStyleCast:
		return s.evalCast(id, st)
	case ast.ExprUnaryOperator:
		return s.evalUnary(id, st)
	case ast.ExprBinaryOperator:
		return s.evalBinary(id, st)
	case ast.ExprConditionalOperator:
		c := s.b.Stmts.Conditional(id)
		cond, ok := s.EvaluateInt(c.Cond)
		if !ok {
			return Value{}, false
		}
		if cond.Bits != 0 {
			return s.EvaluateInt(c.True)
		}
		return s.EvaluateInt(c.False)
	case ast.ExprUnaryExprOrTypeTrait:
		t := s.b.Stmts.Trait(id)
		arg := t.ArgType
		if t.ArgExpr.IsValid() {
			arg = s.b.Stmts.Get(t.ArgExpr).Type
		}
		var n uint64
		var ok bool
		if t.Kind == ast.TraitAlignOf {
			n, ok = s.tys.AlignOf(arg)
		} else {
			n, ok = s.tys.SizeOf(arg)
		}
		if !ok {
			return Value{}, false
		}
		return s.normalize(n, st.Type), true
	}
	return Value{}, false
}

func (s *Sema) evalCast(id ast.StmtID, st *ast.Stmt) (Value, bool) {
	c := s.b.Stmts.Cast(id)
	sub := s.b.Stmts.Get(c.Sub)
	switch c.Kind {
	case ast.CastFloatingToIntegral:
		f, ok := s.evalFloat(c.Sub)
		if !ok {
			return Value{}, false
		}
		if s.tys.IsSigned(st.Type) {
			i, _ := f.Int64()
			return s.normalize(uint64(i), st.Type), true
		}
		u, _ := f.Uint64()
		return s.normalize(u, st.Type), true
	case ast.CastIntegralToBoolean:
		v, ok := s.EvaluateInt(c.Sub)
		return boolValue(ok && v.Bits != 0), ok
	}
	if !s.tys.IsInteger(st.Type) || !s.tys.IsInteger(sub.Type) {
		return Value{}, false
	}
	v, ok := s.EvaluateInt(c.Sub)
	if !ok {
		return Value{}, false
	}
	return s.normalize(v.Bits, st.Type), true
}

func (s *Sema) evalFloat(id ast.StmtID) (*big.Float, bool) {
	st := s.b.Stmts.Get(id)
	switch st.Kind {
	case ast.ExprFloatingLiteral:
		return s.b.Stmts.Float(id).Value, true
	case ast.ExprParen:
		return s.evalFloat(s.b.Stmts.Unary(id).Sub)
	case ast.ExprImplicitCast, ast.ExprCStyleCast:
		c := s.b.Stmts.Cast(id)
		if c.Kind == ast.CastFloatingCast {
			return s.evalFloat(c.Sub)
		}
		if c.Kind == ast.CastIntegralToFloating {
			v, ok := s.EvaluateInt(c.Sub)
			if !ok {
				return nil, false
			}
			if v.Unsigned {
				return new(big.Float).SetUint64(v.Bits), true
			}
			return new(big.Float).SetInt64(v.Int64()), true
		}
	case ast.ExprUnaryOperator:
		u := s.b.Stmts.Unary(id)
		f, ok := s.evalFloat(u.Sub)
		if !ok {
			return nil, false
		}
		switch u.Op {
		case ast.UnaryMinus:
			return new(big.Float).Neg(f), true
		case ast.UnaryPlus:
			return f, true
		}
	}
	return nil, false
}

func (s *Sema) evalUnary(id ast.StmtID, st *ast.Stmt) (Value, bool) {
	u := s.b.Stmts.Unary(id)
	v, ok := s.EvaluateInt(u.Sub)
	if !ok {
		return Value{}, false
	}
	switch u.Op {
	case ast.UnaryPlus, ast.UnaryExtension:
		return s.normalize(v.Bits, st.Type), true
	case ast.UnaryMinus:
		return s.normalize(-v.Bits, st.Type), true
	case ast.UnaryNot:
		return s.normalize(^v.Bits, st.Type), true
	case ast.UnaryLNot:
		return boolValue(v.Bits == 0), true
	}
	return Value{}, false
}

func (s *Sema) evalBinary(id ast.StmtID, st *ast.Stmt) (Value, bool) {
	bin := s.b.Stmts.Binary(id)
	l, ok := s.EvaluateInt(bin.LHS)
	if !ok {
		return Value{}, false
	}
	switch bin.Op {
	case ast.BinaryLAnd:
		if l.Bits == 0 {
			return boolValue(false), true
		}
		r, ok := s.EvaluateInt(bin.RHS)
		return boolValue(r.Bits != 0), ok
	case ast.BinaryLOr:
		if l.Bits != 0 {
			return boolValue(true), true
		}
		r, ok := s.EvaluateInt(bin.RHS)
		return boolValue(r.Bits != 0), ok
	}
	r, ok := s.EvaluateInt(bin.RHS)
	if !ok {
		return Value{}, false
	}
	unsigned := l.Unsigned || r.Unsigned
	switch bin.Op {
	case ast.BinaryAdd:
		return s.normalize(l.Bits+r.Bits, st.Type), true
	case ast.BinarySub:
		return s.normalize(l.Bits-r.Bits, st.Type), true
	case ast.BinaryMul:
		return s.normalize(l.Bits*r.Bits, st.Type), true
	case ast.BinaryDiv, ast.BinaryRem:
		if r.Bits == 0 {
			return Value{}, false
		}
		var q, m uint64
		if unsigned {
			q, m = l.Bits/r.Bits, l.Bits%r.Bits
		} else {
			q, m = uint64(l.Int64()/r.Int64()), uint64(l.Int64()%r.Int64())
		}
		if bin.Op == ast.BinaryDiv {
			return s.normalize(q, st.Type), true
		}
		return s.normalize(m, st.Type), true
	case ast.BinaryShl:
		return s.normalize(l.Bits<<(r.Bits&63), st.Type), true
	case ast.BinaryShr:
		if l.Unsigned {
			return s.normalize(l.Bits>>(r.Bits&63), st.Type), true
		}
		return s.normalize(uint64(l.Int64()>>(r.Bits&63)), st.Type), true
	case ast.BinaryAnd:
		return s.normalize(l.Bits&r.Bits, st.Type), true
	case ast.BinaryOr:
		return s.normalize(l.Bits|r.Bits, st.Type), true
	case ast.BinaryXor:
		return s.normalize(l.Bits^r.Bits, st.Type), true
	case ast.BinaryComma:
		return r, true
	case ast.BinaryEQ:
		return boolValue(l.Bits == r.Bits), true
	case ast.BinaryNE:
		return boolValue(l.Bits != r.Bits), true
	case ast.BinaryLT, ast.BinaryGT, ast.BinaryLE, ast.BinaryGE:
		var c int
		switch {
		case unsigned && l.Bits < r.Bits, !unsigned && l.Int64() < r.Int64():
			c = -1
		case l.Bits == r.Bits:
			c = 0
		default:
			c = 1
		}
		switch bin.Op {
		case ast.BinaryLT:
			return boolValue(c < 0), true
		case ast.BinaryGT:
			return boolValue(c > 0), true
		case ast.BinaryLE:
			return boolValue(c <= 0), true
		default:
			return boolValue(c >= 0), true
		}
	}
	return Value{}, false
}
