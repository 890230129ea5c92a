package parser

import (
	"glsles/internal/ast"
	"glsles/internal/token"
)

type binaryOp struct {
	tok token.Kind
	op  ast.BinaryOp
}

// binaryLevels: уровни бинарных операторов от самого слабого к самому
// сильному. Все уровни левоассоциативны. Операторы |, ^, &, сдвиги и %
// зарезервированы в GLSL ES: парсер их принимает и сообщает об ошибке.
var binaryLevels = [...][]binaryOp{
	{{token.OrOr, ast.BinLogicalOr}},
	{{token.XorXor, ast.BinLogicalXor}},
	{{token.AndAnd, ast.BinLogicalAnd}},
	{{token.Pipe, ast.BinBitOr}},
	{{token.Caret, ast.BinBitXor}},
	{{token.Amp, ast.BinBitAnd}},
	{{token.EqEq, ast.BinEq}, {token.BangEq, ast.BinNotEq}},
	{{token.Lt, ast.BinLess}, {token.Gt, ast.BinGreater}, {token.LtEq, ast.BinLessEq}, {token.GtEq, ast.BinGreaterEq}},
	{{token.ShiftLeft, ast.BinShl}, {token.ShiftRight, ast.BinShr}},
	{{token.Plus, ast.BinAdd}, {token.Minus, ast.BinSub}},
	{{token.Star, ast.BinMul}, {token.Slash, ast.BinDiv}, {token.Percent, ast.BinMod}},
}

func matchBinary(level int, k token.Kind) (ast.BinaryOp, bool) {
	for _, o := range binaryLevels[level] {
		if o.tok == k {
			return o.op, true
		}
	}
	return 0, false
}

var prefixOps = map[token.Kind]ast.UnaryOp{
	token.Plus:       ast.UnaryPlus,
	token.Minus:      ast.UnaryNeg,
	token.Bang:       ast.UnaryNot,
	token.PlusPlus:   ast.UnaryPreInc,
	token.MinusMinus: ast.UnaryPreDec,
	token.Tilde:      ast.UnaryBitNot,
}

// exprStart: токены, с которых может начинаться выражение.
var exprStart = func() []token.Kind {
	out := []token.Kind{
		token.Ident, token.KwMain, token.IntLit, token.FloatLit, token.BoolLit, token.LParen,
		token.Plus, token.Minus, token.Bang, token.Tilde, token.PlusPlus, token.MinusMinus,
	}
	for k := token.KwFloat; k <= token.KwUsampler2D; k++ {
		if k.IsBuiltinType() {
			out = append(out, k)
		}
	}
	return out
}()

func canStartExpression(k token.Kind) bool {
	if k == token.KwVoid {
		return false
	}
	if k.IsBuiltinType() {
		return true
	}
	_, prefix := prefixOps[k]
	return prefix || identLike(k) || k.IsLiteral() || k == token.LParen
}

// typeStart: токены, с которых может начинаться спецификатор типа.
var typeStart = func() []token.Kind {
	out := []token.Kind{token.KwHighp, token.KwMediump, token.KwLowp, token.KwStruct, token.Ident}
	for k := token.KwVoid; k <= token.KwUsampler2D; k++ {
		out = append(out, k)
	}
	return out
}()

func canStartType(k token.Kind) bool {
	return k.IsBuiltinType() || k.IsPrecisionQualifier() || k == token.KwStruct || k == token.Ident
}

func canStartDeclaration(k token.Kind) bool {
	return canStartType(k) || k.IsStorageQualifier() || k == token.KwInvariant ||
		k == token.KwPrecision || k == token.KwInout
}
