package ast

func (s *Stmts) payload(id StmtID, lo, hi StmtKind) uint32 {
	st := s.Get(id)
	if st == nil || st.Kind < lo || st.Kind > hi {
		return 0
	}
	return uint32(st.Payload)
}

func (s *Stmts) Compound(id StmtID) *CompoundData {
	return s.Compounds.Get(s.payload(id, StmtCompound, StmtCompound))
}

func (s *Stmts) DeclStmt(id StmtID) *DeclStmtData {
	return s.DeclStmts.Get(s.payload(id, StmtDecl, StmtDecl))
}

func (s *Stmts) If(id StmtID) *IfData {
	return s.Ifs.Get(s.payload(id, StmtIf, StmtIf))
}

// Loop returns the payload of while, do, for and switch statements.
func (s *Stmts) Loop(id StmtID) *LoopData {
	return s.Loops.Get(s.payload(id, StmtWhile, StmtSwitch))
}

// Case returns the payload of case and default statements.
func (s *Stmts) Case(id StmtID) *CaseData {
	return s.Cases.Get(s.payload(id, FirstSwitchCase, LastSwitchCase))
}

func (s *Stmts) LabelStmt(id StmtID) *LabelStmtData {
	return s.LabelStmts.Get(s.payload(id, StmtLabel, StmtLabel))
}

func (s *Stmts) Goto(id StmtID) *GotoData {
	return s.Gotos.Get(s.payload(id, StmtGoto, StmtGoto))
}

func (s *Stmts) Return(id StmtID) *ReturnData {
	return s.Returns.Get(s.payload(id, StmtReturn, StmtReturn))
}

func (s *Stmts) Integer(id StmtID) *IntegerData {
	return s.Integers.Get(s.payload(id, ExprIntegerLiteral, ExprIntegerLiteral))
}

func (s *Stmts) Float(id StmtID) *FloatData {
	return s.Floats.Get(s.payload(id, ExprFloatingLiteral, ExprFloatingLiteral))
}

func (s *Stmts) Char(id StmtID) *CharData {
	return s.Chars.Get(s.payload(id, ExprCharacterLiteral, ExprCharacterLiteral))
}

func (s *Stmts) String(id StmtID) *StringData {
	return s.Strings.Get(s.payload(id, ExprStringLiteral, ExprStringLiteral))
}

func (s *Stmts) Predefined(id StmtID) *PredefinedData {
	return s.Predefineds.Get(s.payload(id, ExprPredefined, ExprPredefined))
}

func (s *Stmts) DeclRef(id StmtID) *DeclRefData {
	return s.DeclRefs.Get(s.payload(id, ExprDeclRef, ExprDeclRef))
}

// Unary returns the payload of UnaryOperator, ParenExpr and StmtExpr.
func (s *Stmts) Unary(id StmtID) *UnaryData {
	st := s.Get(id)
	if st == nil {
		return nil
	}
	switch st.Kind {
	case ExprUnaryOperator, ExprParen, ExprStmt:
		return s.Unaries.Get(uint32(st.Payload))
	}
	return nil
}

func (s *Stmts) Binary(id StmtID) *BinaryData {
	return s.Binaries.Get(s.payload(id, FirstBinaryOperator, LastBinaryOperator))
}

func (s *Stmts) Conditional(id StmtID) *ConditionalData {
	return s.Conditionals.Get(s.payload(id, ExprConditionalOperator, ExprConditionalOperator))
}

func (s *Stmts) Cast(id StmtID) *CastData {
	return s.Casts.Get(s.payload(id, FirstCastExpr, LastCastExpr))
}

func (s *Stmts) Call(id StmtID) *CallData {
	return s.Calls.Get(s.payload(id, ExprCall, ExprCall))
}

func (s *Stmts) Member(id StmtID) *MemberData {
	return s.Members.Get(s.payload(id, ExprMember, ExprMember))
}

func (s *Stmts) Subscript(id StmtID) *SubscriptData {
	return s.Subscripts.Get(s.payload(id, ExprArraySubscript, ExprArraySubscript))
}

func (s *Stmts) InitList(id StmtID) *InitListData {
	return s.InitLists.Get(s.payload(id, ExprInitList, ExprInitList))
}

func (s *Stmts) Trait(id StmtID) *TraitData {
	return s.Traits.Get(s.payload(id, ExprUnaryExprOrTypeTrait, ExprUnaryExprOrTypeTrait))
}

func (s *Stmts) VAArg(id StmtID) *VAArgData {
	return s.VAArgs.Get(s.payload(id, ExprVAArg, ExprVAArg))
}

func (s *Stmts) CompoundLiteral(id StmtID) *CompoundLiteralData {
	return s.CompoundLits.Get(s.payload(id, ExprCompoundLiteral, ExprCompoundLiteral))
}

// BodyTail returns the last statement of a compound; walk backwards with
// PrevSibling.
func (s *Stmts) BodyTail(id StmtID) StmtID {
	if c := s.Compound(id); c != nil {
		return c.Last
	}
	return NoStmtID
}

// PrevSibling returns the statement before id in its compound body.
func (s *Stmts) PrevSibling(id StmtID) StmtID {
	if st := s.Get(id); st != nil {
		return st.Prev
	}
	return NoStmtID
}

// GroupTail returns the last declaration of a DeclStmt; walk backwards with
// Decls.GroupPrevOf.
func (s *Stmts) GroupTail(id StmtID) DeclID {
	if d := s.DeclStmt(id); d != nil {
		return d.Last
	}
	return NoDeclID
}

// GroupPrevOf returns the declaration before id inside its DeclStmt.
func (d *Decls) GroupPrevOf(id DeclID) DeclID {
	if decl := d.Get(id); decl != nil {
		return decl.GroupPrev
	}
	return NoDeclID
}

// IgnoreParenImpCasts strips parentheses and implicit casts.
func (s *Stmts) IgnoreParenImpCasts(id StmtID) StmtID {
	for {
		st := s.Get(id)
		if st == nil {
			return id
		}
		switch st.Kind {
		case ExprParen:
			id = s.Unaries.Get(uint32(st.Payload)).Sub
		case ExprImplicitCast:
			id = s.Casts.Get(uint32(st.Payload)).Sub
		default:
			return id
		}
	}
}
