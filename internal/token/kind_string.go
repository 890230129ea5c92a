package token

import "strconv"

var kindNames = [kindCount]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	IntLit:   "IntLit",
	FloatLit: "FloatLit",
	BoolLit:  "BoolLit",

	KwVoid:           "KwVoid",
	KwFloat:          "KwFloat",
	KwInt:            "KwInt",
	KwBool:           "KwBool",
	KwVec2:           "KwVec2",
	KwVec3:           "KwVec3",
	KwVec4:           "KwVec4",
	KwBvec2:          "KwBvec2",
	KwBvec3:          "KwBvec3",
	KwBvec4:          "KwBvec4",
	KwIvec2:          "KwIvec2",
	KwIvec3:          "KwIvec3",
	KwIvec4:          "KwIvec4",
	KwMat2:           "KwMat2",
	KwMat3:           "KwMat3",
	KwMat4:           "KwMat4",
	KwSampler2D:      "KwSampler2D",
	KwSamplerCube:    "KwSamplerCube",
	KwSampler1D:      "KwSampler1D",
	KwSampler1DArray: "KwSampler1DArray",
	KwSampler2DArray: "KwSampler2DArray",
	KwIsampler1D:     "KwIsampler1D",
	KwIsampler2D:     "KwIsampler2D",
	KwUsampler1D:     "KwUsampler1D",
	KwUsampler2D:     "KwUsampler2D",

	KwConst:     "KwConst",
	KwAttribute: "KwAttribute",
	KwVarying:   "KwVarying",
	KwUniform:   "KwUniform",
	KwInvariant: "KwInvariant",
	KwIn:        "KwIn",
	KwOut:       "KwOut",
	KwInout:     "KwInout",
	KwHighp:     "KwHighp",
	KwMediump:   "KwMediump",
	KwLowp:      "KwLowp",
	KwPrecision: "KwPrecision",
	KwStruct:    "KwStruct",

	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwWhile:    "KwWhile",
	KwDo:       "KwDo",
	KwFor:      "KwFor",
	KwContinue: "KwContinue",
	KwBreak:    "KwBreak",
	KwReturn:   "KwReturn",
	KwDiscard:  "KwDiscard",
	KwMain:     "KwMain",

	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Dot:       "Dot",
	Comma:     "Comma",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Question:  "Question",

	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Bang:       "Bang",
	Lt:         "Lt",
	Gt:         "Gt",
	LtEq:       "LtEq",
	GtEq:       "GtEq",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	AndAnd:     "AndAnd",
	XorXor:     "XorXor",
	OrOr:       "OrOr",
	PlusPlus:   "PlusPlus",
	MinusMinus: "MinusMinus",

	Assign:      "Assign",
	PlusAssign:  "PlusAssign",
	MinusAssign: "MinusAssign",
	StarAssign:  "StarAssign",
	SlashAssign: "SlashAssign",

	Percent:       "Percent",
	PercentAssign: "PercentAssign",
	Tilde:         "Tilde",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Caret:         "Caret",
	ShiftLeft:     "ShiftLeft",
	ShiftRight:    "ShiftRight",
	AmpAssign:     "AmpAssign",
	PipeAssign:    "PipeAssign",
	CaretAssign:   "CaretAssign",
	ShlAssign:     "ShlAssign",
	ShrAssign:     "ShrAssign",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// punctText holds the fixed spelling of operator and punctuation kinds.
var punctText = map[Kind]string{
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Dot: ".", Comma: ",", Colon: ":", Semicolon: ";", Question: "?",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Bang: "!",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=", EqEq: "==", BangEq: "!=",
	AndAnd: "&&", XorXor: "^^", OrOr: "||", PlusPlus: "++", MinusMinus: "--",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	Percent: "%", PercentAssign: "%=", Tilde: "~", Amp: "&", Pipe: "|", Caret: "^",
	ShiftLeft: "<<", ShiftRight: ">>", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", ShrAssign: ">>=",
}

// Display renders k the way diagnostics quote it: 'uniform', ';', identifier.
func (k Kind) Display() string {
	switch k {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer constant"
	case FloatLit:
		return "float constant"
	case BoolLit:
		return "bool constant"
	case Invalid:
		return "invalid token"
	}
	if s, ok := punctText[k]; ok {
		return "'" + s + "'"
	}
	if s, ok := keywordText[k]; ok {
		return "'" + s + "'"
	}
	return k.String()
}

// Spelling returns the fixed source text of a keyword or operator kind,
// or "" for kinds whose text varies (identifiers, literals).
func (k Kind) Spelling() string {
	if s, ok := punctText[k]; ok {
		return s
	}
	return keywordText[k]
}
