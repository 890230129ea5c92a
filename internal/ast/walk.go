package ast

// NodeKind tags a NodeRef.
type NodeKind uint8

const (
	NodeUnit NodeKind = iota
	NodeDecl
	NodeStmt
	NodeExpr
	NodeType
	NodeParam
	NodeField
)

func (k NodeKind) String() string {
	switch k {
	case NodeUnit:
		return "unit"
	case NodeDecl:
		return "decl"
	case NodeStmt:
		return "stmt"
	case NodeExpr:
		return "expr"
	case NodeType:
		return "type"
	case NodeParam:
		return "param"
	case NodeField:
		return "field"
	default:
		return "?"
	}
}

// NodeRef names any node of the tree.
type NodeRef struct {
	Kind NodeKind
	ID   uint32
}

func UnitRef(id UnitID) NodeRef   { return NodeRef{NodeUnit, uint32(id)} }
func DeclRef(id DeclID) NodeRef   { return NodeRef{NodeDecl, uint32(id)} }
func StmtRef(id StmtID) NodeRef   { return NodeRef{NodeStmt, uint32(id)} }
func ExprRef(id ExprID) NodeRef   { return NodeRef{NodeExpr, uint32(id)} }
func TypeRef(id TypeID) NodeRef   { return NodeRef{NodeType, uint32(id)} }
func ParamRef(id ParamID) NodeRef { return NodeRef{NodeParam, uint32(id)} }
func FieldRef(id FieldID) NodeRef { return NodeRef{NodeField, uint32(id)} }

// Children lists the direct children of n in source order. Absent optional
// children (no initializer, no else) are skipped.
func (b *Builder) Children(n NodeRef) []NodeRef {
	var out []NodeRef
	addExpr := func(id ExprID) {
		if id.IsValid() {
			out = append(out, ExprRef(id))
		}
	}
	addStmt := func(id StmtID) {
		if id.IsValid() {
			out = append(out, StmtRef(id))
		}
	}
	addType := func(id TypeID) {
		if id.IsValid() {
			out = append(out, TypeRef(id))
		}
	}
	addDecl := func(id DeclID) {
		if id.IsValid() {
			out = append(out, DeclRef(id))
		}
	}
	addCond := func(c Condition) {
		addExpr(c.Expr)
		addDecl(c.Decl)
	}

	switch n.Kind {
	case NodeUnit:
		if u := b.Units.Get(UnitID(n.ID)); u != nil {
			for _, d := range u.Decls {
				addDecl(d)
			}
		}

	case NodeDecl:
		id := DeclID(n.ID)
		decl := b.Decls.Get(id)
		if decl == nil {
			return nil
		}
		switch decl.Kind {
		case DeclFunction:
			fn, _ := b.Decls.Function(id)
			addType(fn.Return)
			for _, p := range fn.Params {
				out = append(out, ParamRef(p))
			}
			addStmt(fn.Body)
		case DeclVariables:
			v, _ := b.Decls.Variables(id)
			addType(v.Type)
			for _, d := range v.Declarators {
				addExpr(d.Array.Size)
				addExpr(d.Init)
			}
		case DeclPrecision:
			p, _ := b.Decls.Precision(id)
			addType(p.Type)
		case DeclStruct:
			s, _ := b.Decls.Struct(id)
			addType(s.Type)
		case DeclInvariant:
		}

	case NodeParam:
		if p := b.Decls.Param(ParamID(n.ID)); p != nil {
			addType(p.Type)
			addExpr(p.Array.Size)
		}

	case NodeType:
		if spec, ok := b.Types.Struct(TypeID(n.ID)); ok {
			for _, m := range spec.Members {
				addType(m.Type)
				for _, f := range m.Fields {
					out = append(out, FieldRef(f))
				}
			}
		}

	case NodeField:
		if f := b.Types.Field(FieldID(n.ID)); f != nil {
			addExpr(f.Array.Size)
		}

	case NodeStmt:
		id := StmtID(n.ID)
		st := b.Stmts.Get(id)
		if st == nil {
			return nil
		}
		switch st.Kind {
		case StmtBlock:
			for _, s := range b.Stmts.Block(id).Stmts {
				addStmt(s)
			}
		case StmtDecl:
			addDecl(b.Stmts.Decl(id).Decl)
		case StmtExpr:
			addExpr(b.Stmts.Expr(id).Expr)
		case StmtIf:
			s := b.Stmts.If(id)
			addExpr(s.Cond)
			addStmt(s.Then)
			addStmt(s.Else)
		case StmtWhile:
			s := b.Stmts.While(id)
			addCond(s.Cond)
			addStmt(s.Body)
		case StmtDoWhile:
			s := b.Stmts.DoWhile(id)
			addStmt(s.Body)
			addExpr(s.Cond)
		case StmtFor:
			s := b.Stmts.For(id)
			addStmt(s.Init)
			addCond(s.Cond)
			addExpr(s.Step)
			addStmt(s.Body)
		case StmtReturn:
			addExpr(b.Stmts.Return(id).Value)
		case StmtEmpty, StmtContinue, StmtBreak, StmtDiscard:
		}

	case NodeExpr:
		id := ExprID(n.ID)
		e := b.Exprs.Get(id)
		if e == nil {
			return nil
		}
		switch e.Kind {
		case ExprCall:
			c, _ := b.Exprs.Call(id)
			for _, a := range c.Args {
				addExpr(a)
			}
		case ExprIndex:
			x, _ := b.Exprs.Index(id)
			addExpr(x.Base)
			addExpr(x.Index)
		case ExprField:
			x, _ := b.Exprs.Field(id)
			addExpr(x.Base)
		case ExprPostfix:
			x, _ := b.Exprs.Postfix(id)
			addExpr(x.Operand)
		case ExprUnary:
			x, _ := b.Exprs.Unary(id)
			addExpr(x.Operand)
		case ExprBinary:
			x, _ := b.Exprs.Binary(id)
			addExpr(x.Left)
			addExpr(x.Right)
		case ExprTernary:
			x, _ := b.Exprs.Ternary(id)
			addExpr(x.Cond)
			addExpr(x.Then)
			addExpr(x.Else)
		case ExprAssign:
			x, _ := b.Exprs.Assign(id)
			addExpr(x.Target)
			addExpr(x.Value)
		case ExprComma:
			x, _ := b.Exprs.Comma(id)
			for _, it := range x.Items {
				addExpr(it)
			}
		case ExprGroup:
			x, _ := b.Exprs.Group(id)
			addExpr(x.Inner)
		case ExprIdent, ExprLit:
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of that node.
func (b *Builder) Walk(n NodeRef, fn func(n NodeRef, depth int) bool) {
	b.walk(n, 0, fn)
}

func (b *Builder) walk(n NodeRef, depth int, fn func(NodeRef, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range b.Children(n) {
		b.walk(c, depth+1, fn)
	}
}
