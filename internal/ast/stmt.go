package ast

import (
	"glsles/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtDecl
	StmtExpr
	StmtEmpty
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtContinue
	StmtBreak
	StmtReturn
	StmtDiscard
)

var stmtKindNames = [...]string{
	StmtBlock:    "Block",
	StmtDecl:     "Decl",
	StmtExpr:     "Expr",
	StmtEmpty:    "Empty",
	StmtIf:       "If",
	StmtWhile:    "While",
	StmtDoWhile:  "DoWhile",
	StmtFor:      "For",
	StmtContinue: "Continue",
	StmtBreak:    "Break",
	StmtReturn:   "Return",
	StmtDiscard:  "Discard",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// BlockStmt is a compound statement. Function bodies do not open a new scope.
type BlockStmt struct {
	Stmts    []StmtID
	NewScope bool
}

type DeclStmt struct {
	Decl DeclID
}

type ExprStmt struct {
	Expr ExprID
}

// Condition is either an expression or `type name = init` (while/for only).
type Condition struct {
	Expr ExprID
	Decl DeclID
}

// IsValid reports whether a condition was written at all.
func (c Condition) IsValid() bool { return c.Expr.IsValid() || c.Decl.IsValid() }

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID without else
}

type WhileStmt struct {
	Cond Condition
	Body StmtID
}

type DoWhileStmt struct {
	Body StmtID
	Cond ExprID
}

// ForStmt: Init is a StmtDecl, StmtExpr or StmtEmpty.
type ForStmt struct {
	Init StmtID
	Cond Condition
	Step ExprID
	Body StmtID
}

type ReturnStmt struct {
	Value ExprID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	Decls    *Arena[DeclStmt]
	Exprs    *Arena[ExprStmt]
	Ifs      *Arena[IfStmt]
	Whiles   *Arena[WhileStmt]
	DoWhiles *Arena[DoWhileStmt]
	Fors     *Arena[ForStmt]
	Returns  *Arena[ReturnStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](small),
		Decls:    NewArena[DeclStmt](small),
		Exprs:    NewArena[ExprStmt](capHint),
		Ifs:      NewArena[IfStmt](small),
		Whiles:   NewArena[WhileStmt](small),
		DoWhiles: NewArena[DoWhileStmt](small),
		Fors:     NewArena[ForStmt](small),
		Returns:  NewArena[ReturnStmt](small),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID, newScope bool) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: stmts, NewScope: newScope}))
}

func (s *Stmts) Block(id StmtID) *BlockStmt {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil
	}
	return s.Blocks.Get(p)
}

func (s *Stmts) NewDecl(span source.Span, decl DeclID) StmtID {
	return s.new(StmtDecl, span, s.Decls.Allocate(DeclStmt{Decl: decl}))
}

func (s *Stmts) Decl(id StmtID) *DeclStmt {
	p, ok := s.payload(id, StmtDecl)
	if !ok {
		return nil
	}
	return s.Decls.Get(p)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) *ExprStmt {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil
	}
	return s.Exprs.Get(p)
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) *IfStmt {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil
	}
	return s.Ifs.Get(p)
}

func (s *Stmts) NewWhile(span source.Span, cond Condition, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) *WhileStmt {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil
	}
	return s.Whiles.Get(p)
}

func (s *Stmts) NewDoWhile(span source.Span, body StmtID, cond ExprID) StmtID {
	return s.new(StmtDoWhile, span, s.DoWhiles.Allocate(DoWhileStmt{Body: body, Cond: cond}))
}

func (s *Stmts) DoWhile(id StmtID) *DoWhileStmt {
	p, ok := s.payload(id, StmtDoWhile)
	if !ok {
		return nil
	}
	return s.DoWhiles.Get(p)
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond Condition, step ExprID, body StmtID) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(ForStmt{Init: init, Cond: cond, Step: step, Body: body}))
}

func (s *Stmts) For(id StmtID) *ForStmt {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil
	}
	return s.Fors.Get(p)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) *ReturnStmt {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil
	}
	return s.Returns.Get(p)
}
