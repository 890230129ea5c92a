package ast

import (
	"glsles/internal/source"
	"glsles/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent is a variable reference.
	ExprIdent ExprKind = iota
	// ExprLit is an int, float or bool constant.
	ExprLit
	// ExprCall is a function call or constructor: f(x), vec3(1.0), S(a, b).
	ExprCall
	// ExprIndex is base[index].
	ExprIndex
	// ExprField is base.name (struct field or swizzle).
	ExprField
	// ExprPostfix is x++ / x--.
	ExprPostfix
	// ExprUnary is a prefix operator.
	ExprUnary
	ExprBinary
	ExprTernary
	ExprAssign
	// ExprComma is a comma-separated expression list.
	ExprComma
	// ExprGroup is a parenthesized expression.
	ExprGroup
)

var exprKindNames = [...]string{
	ExprIdent:   "Ident",
	ExprLit:     "Lit",
	ExprCall:    "Call",
	ExprIndex:   "Index",
	ExprField:   "Field",
	ExprPostfix: "Postfix",
	ExprUnary:   "Unary",
	ExprBinary:  "Binary",
	ExprTernary: "Ternary",
	ExprAssign:  "Assign",
	ExprComma:   "Comma",
	ExprGroup:   "Group",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "?"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LitKind is the kind of a literal constant.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	default:
		return "bool"
	}
}

// BinaryOp enumerates binary operators. Everything from BinMod on is
// reserved in GLSL ES; the parser reports them but still builds the node.
type BinaryOp uint8

const (
	BinMul BinaryOp = iota
	BinDiv
	BinAdd
	BinSub
	BinLess
	BinGreater
	BinLessEq
	BinGreaterEq
	BinEq
	BinNotEq
	BinLogicalAnd
	BinLogicalXor
	BinLogicalOr

	BinMod
	BinBitAnd
	BinBitXor
	BinBitOr
	BinShl
	BinShr
)

var binaryOpText = [...]string{
	BinMul: "*", BinDiv: "/", BinAdd: "+", BinSub: "-",
	BinLess: "<", BinGreater: ">", BinLessEq: "<=", BinGreaterEq: ">=",
	BinEq: "==", BinNotEq: "!=",
	BinLogicalAnd: "&&", BinLogicalXor: "^^", BinLogicalOr: "||",
	BinMod: "%", BinBitAnd: "&", BinBitXor: "^", BinBitOr: "|",
	BinShl: "<<", BinShr: ">>",
}

// String returns the symbol representation of a binary operator.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// Reserved reports operators GLSL ES reserves but does not allow.
func (op BinaryOp) Reserved() bool { return op >= BinMod }

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryNeg
	UnaryNot
	UnaryPreInc
	UnaryPreDec
	UnaryBitNot // reserved
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryPreInc:
		return "++"
	case UnaryPreDec:
		return "--"
	case UnaryBitNot:
		return "~"
	default:
		return "?"
	}
}

// PostfixOp is ++ or -- after an operand.
type PostfixOp uint8

const (
	PostInc PostfixOp = iota
	PostDec
)

func (op PostfixOp) String() string {
	if op == PostDec {
		return "--"
	}
	return "++"
}

// AssignOp enumerates assignment operators; AssignMod and later are reserved.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
)

// Reserved reports compound assignments GLSL ES reserves.
func (op AssignOp) Reserved() bool { return op >= AssignMod }

func (op AssignOp) String() string {
	switch op {
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	case AssignAnd:
		return "&="
	case AssignOr:
		return "|="
	case AssignXor:
		return "^="
	case AssignShl:
		return "<<="
	case AssignShr:
		return ">>="
	default:
		return "="
	}
}

// AssignOpFromToken maps an assignment token; ok is false for anything else.
func AssignOpFromToken(k token.Kind) (AssignOp, bool) {
	switch k {
	case token.Assign:
		return AssignPlain, true
	case token.PlusAssign:
		return AssignAdd, true
	case token.MinusAssign:
		return AssignSub, true
	case token.StarAssign:
		return AssignMul, true
	case token.SlashAssign:
		return AssignDiv, true
	case token.PercentAssign:
		return AssignMod, true
	case token.AmpAssign:
		return AssignAnd, true
	case token.PipeAssign:
		return AssignOr, true
	case token.CaretAssign:
		return AssignXor, true
	case token.ShlAssign:
		return AssignShl, true
	case token.ShrAssign:
		return AssignShr, true
	default:
		return 0, false
	}
}

type ExprIdentData struct {
	Name string
}

type ExprLitData struct {
	Kind LitKind
	Text string // raw spelling, never evaluated
}

// ExprCallData covers calls and constructors. Ctor is the type keyword for
// builtin constructors (vec3(...)); otherwise Name holds the callee, which
// may be a function or a struct constructor.
type ExprCallData struct {
	Name     string
	NameSpan source.Span
	Ctor     token.Kind
	Args     []ExprID
	Void     bool // f(void)
}

// IsConstructor reports a builtin type constructor.
func (c *ExprCallData) IsConstructor() bool { return c.Ctor != token.Invalid }

// Callee returns the spelled name of the called function or type.
func (c *ExprCallData) Callee() string {
	if c.IsConstructor() {
		return c.Ctor.Spelling()
	}
	return c.Name
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

type ExprFieldData struct {
	Base      ExprID
	Field     string
	FieldSpan source.Span
}

type ExprPostfixData struct {
	Op      PostfixOp
	Operand ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprAssignData struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

type ExprCommaData struct {
	Items []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}
