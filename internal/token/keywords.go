package token

var keywords = map[string]Kind{
	"void":           KwVoid,
	"float":          KwFloat,
	"int":            KwInt,
	"bool":           KwBool,
	"vec2":           KwVec2,
	"vec3":           KwVec3,
	"vec4":           KwVec4,
	"bvec2":          KwBvec2,
	"bvec3":          KwBvec3,
	"bvec4":          KwBvec4,
	"ivec2":          KwIvec2,
	"ivec3":          KwIvec3,
	"ivec4":          KwIvec4,
	"mat2":           KwMat2,
	"mat3":           KwMat3,
	"mat4":           KwMat4,
	"sampler2D":      KwSampler2D,
	"samplerCube":    KwSamplerCube,
	"sampler1D":      KwSampler1D,
	"sampler1DArray": KwSampler1DArray,
	"sampler2DArray": KwSampler2DArray,
	"isampler1D":     KwIsampler1D,
	"isampler2D":     KwIsampler2D,
	"usampler1D":     KwUsampler1D,
	"usampler2D":     KwUsampler2D,

	"const":     KwConst,
	"attribute": KwAttribute,
	"varying":   KwVarying,
	"uniform":   KwUniform,
	"invariant": KwInvariant,
	"in":        KwIn,
	"out":       KwOut,
	"inout":     KwInout,
	"highp":     KwHighp,
	"mediump":   KwMediump,
	"lowp":      KwLowp,
	"precision": KwPrecision,
	"struct":    KwStruct,

	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"do":       KwDo,
	"for":      KwFor,
	"continue": KwContinue,
	"break":    KwBreak,
	"return":   KwReturn,
	"discard":  KwDiscard,
	"main":     KwMain,

	"true":  BoolLit,
	"false": BoolLit,
}

// keywordText is the reverse table used by Display; BoolLit is left out.
var keywordText = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		if k != BoolLit {
			out[k] = text
		}
	}
	return out
}()

// LookupKeyword reports whether ident is a reserved word and which kind it lexes to.
// Matching is case-sensitive and whole-word; "main" is a keyword too.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
