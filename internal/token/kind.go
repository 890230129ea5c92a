package token

// Kind represents the category of a GLSL ES token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown byte, broken literal,
	// or the terminal token after an unterminated comment).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier: [A-Za-z_][A-Za-z0-9_]*.
	Ident
	// IntLit represents a decimal, octal or hexadecimal integer constant.
	IntLit
	// FloatLit represents a floating point constant.
	FloatLit
	// BoolLit represents the constants true and false.
	BoolLit

	// Built-in type keywords.
	KwVoid
	KwFloat
	KwInt
	KwBool
	KwVec2
	KwVec3
	KwVec4
	KwBvec2
	KwBvec3
	KwBvec4
	KwIvec2
	KwIvec3
	KwIvec4
	KwMat2
	KwMat3
	KwMat4
	KwSampler2D
	KwSamplerCube
	// Desktop sampler names accepted for shared vertex/fragment sources.
	KwSampler1D
	KwSampler1DArray
	KwSampler2DArray
	KwIsampler1D
	KwIsampler2D
	KwUsampler1D
	KwUsampler2D

	// KwConst represents the 'const' storage qualifier.
	KwConst
	// KwAttribute represents the 'attribute' storage qualifier.
	KwAttribute
	// KwVarying represents the 'varying' storage qualifier.
	KwVarying
	// KwUniform represents the 'uniform' storage qualifier.
	KwUniform
	// KwInvariant represents the 'invariant' qualifier.
	KwInvariant
	// KwIn represents the 'in' parameter or global qualifier.
	KwIn
	// KwOut represents the 'out' parameter or global qualifier.
	KwOut
	// KwInout represents the 'inout' parameter qualifier.
	KwInout
	// KwHighp represents the 'highp' precision qualifier.
	KwHighp
	// KwMediump represents the 'mediump' precision qualifier.
	KwMediump
	// KwLowp represents the 'lowp' precision qualifier.
	KwLowp
	// KwPrecision begins a default precision statement.
	KwPrecision
	// KwStruct begins a struct specifier.
	KwStruct

	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwDo       // do
	KwFor      // for
	KwContinue // continue
	KwBreak    // break
	KwReturn   // return
	KwDiscard  // discard

	// KwMain is the entry point name, lexed as a keyword of its own.
	KwMain

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Dot       // .
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Question  // ?

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Bang       // !
	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	EqEq       // ==
	BangEq     // !=
	AndAnd     // &&
	XorXor     // ^^
	OrOr       // ||
	PlusPlus   // ++
	MinusMinus // --

	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=

	// Reserved by GLSL ES 1.00: lexed so the parser can name them precisely.
	Percent       // %
	PercentAssign // %=
	Tilde         // ~
	Amp           // &
	Pipe          // |
	Caret         // ^
	ShiftLeft     // <<
	ShiftRight    // >>
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=

	kindCount
)

// IsBuiltinType reports whether k names a built-in type (including void).
func (k Kind) IsBuiltinType() bool {
	return k >= KwVoid && k <= KwUsampler2D
}

// IsSampler reports whether k is one of the opaque sampler types.
func (k Kind) IsSampler() bool {
	return k >= KwSampler2D && k <= KwUsampler2D
}

// IsStorageQualifier reports const/attribute/varying/uniform/in/out.
func (k Kind) IsStorageQualifier() bool {
	switch k {
	case KwConst, KwAttribute, KwVarying, KwUniform, KwIn, KwOut:
		return true
	default:
		return false
	}
}

// IsPrecisionQualifier reports highp/mediump/lowp.
func (k Kind) IsPrecisionQualifier() bool {
	return k == KwHighp || k == KwMediump || k == KwLowp
}

// IsParamQualifier reports in/out/inout.
func (k Kind) IsParamQualifier() bool {
	return k == KwIn || k == KwOut || k == KwInout
}

// IsQualifier reports whether k may start a qualifier sequence.
func (k Kind) IsQualifier() bool {
	return k.IsStorageQualifier() || k.IsPrecisionQualifier() || k == KwInvariant || k == KwInout
}

// IsAssignOp reports the assignment operators, reserved ones included.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign:
		return true
	default:
		return false
	}
}

// IsReserved reports operators GLSL ES 1.00 reserves but does not define.
func (k Kind) IsReserved() bool {
	return k >= Percent && k <= ShrAssign
}

// IsLiteral reports the constant kinds.
func (k Kind) IsLiteral() bool {
	return k == IntLit || k == FloatLit || k == BoolLit
}

// IsKeyword reports whether k is spelled by a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwVoid && k <= KwMain
}
