package ast

import (
	"glsles/internal/source"
	"glsles/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLitData]
	Calls     *Arena[ExprCallData]
	Indices   *Arena[ExprIndexData]
	Fields    *Arena[ExprFieldData]
	Postfixes *Arena[ExprPostfixData]
	Unaries   *Arena[ExprUnaryData]
	Binaries  *Arena[ExprBinaryData]
	Ternaries *Arena[ExprTernaryData]
	Assigns   *Arena[ExprAssignData]
	Commas    *Arena[ExprCommaData]
	Groups    *Arena[ExprGroupData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Literals:  NewArena[ExprLitData](capHint),
		Calls:     NewArena[ExprCallData](small),
		Indices:   NewArena[ExprIndexData](small),
		Fields:    NewArena[ExprFieldData](small),
		Postfixes: NewArena[ExprPostfixData](small),
		Unaries:   NewArena[ExprUnaryData](small),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Ternaries: NewArena[ExprTernaryData](small),
		Assigns:   NewArena[ExprAssignData](small),
		Commas:    NewArena[ExprCommaData](small),
		Groups:    NewArena[ExprGroupData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, text string) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLitData{Kind: kind, Text: text}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewCall creates a call to a named function or struct constructor.
func (e *Exprs) NewCall(span source.Span, name string, nameSpan source.Span, args []ExprID, void bool) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Name: name, NameSpan: nameSpan, Args: args, Void: void}))
}

// NewConstructor creates a builtin type constructor call such as vec3(...).
func (e *Exprs) NewConstructor(span source.Span, ctor token.Kind, nameSpan source.Span, args []ExprID, void bool) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Ctor: ctor, NameSpan: nameSpan, Args: args, Void: void}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewIndex(span source.Span, base, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Base: base, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

func (e *Exprs) NewField(span source.Span, base ExprID, field string, fieldSpan source.Span) ExprID {
	return e.new(ExprField, span, e.Fields.Allocate(ExprFieldData{Base: base, Field: field, FieldSpan: fieldSpan}))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	p, ok := e.payload(id, ExprField)
	if !ok {
		return nil, false
	}
	return e.Fields.Get(p), true
}

func (e *Exprs) NewPostfix(span source.Span, op PostfixOp, operand ExprID) ExprID {
	return e.new(ExprPostfix, span, e.Postfixes.Allocate(ExprPostfixData{Op: op, Operand: operand}))
}

func (e *Exprs) Postfix(id ExprID) (*ExprPostfixData, bool) {
	p, ok := e.payload(id, ExprPostfix)
	if !ok {
		return nil, false
	}
	return e.Postfixes.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	p, ok := e.payload(id, ExprTernary)
	if !ok {
		return nil, false
	}
	return e.Ternaries.Get(p), true
}

func (e *Exprs) NewAssign(span source.Span, op AssignOp, target, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value}))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

func (e *Exprs) NewComma(span source.Span, items []ExprID) ExprID {
	return e.new(ExprComma, span, e.Commas.Allocate(ExprCommaData{Items: items}))
}

func (e *Exprs) Comma(id ExprID) (*ExprCommaData, bool) {
	p, ok := e.payload(id, ExprComma)
	if !ok {
		return nil, false
	}
	return e.Commas.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}
