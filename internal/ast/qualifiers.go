package ast

import (
	"strings"

	"glsles/internal/source"
	"glsles/internal/token"
)

// StorageQual is the storage class of a declaration.
type StorageQual uint8

const (
	StorageNone StorageQual = iota
	StorageConst
	StorageAttribute
	StorageVarying
	StorageUniform
	StorageIn
	StorageOut
)

var storageNames = [...]string{"", "const", "attribute", "varying", "uniform", "in", "out"}

func (s StorageQual) String() string {
	if int(s) < len(storageNames) {
		return storageNames[s]
	}
	return "?"
}

// StorageFromToken maps a storage keyword to its qualifier.
func StorageFromToken(k token.Kind) StorageQual {
	switch k {
	case token.KwConst:
		return StorageConst
	case token.KwAttribute:
		return StorageAttribute
	case token.KwVarying:
		return StorageVarying
	case token.KwUniform:
		return StorageUniform
	case token.KwIn:
		return StorageIn
	case token.KwOut:
		return StorageOut
	default:
		return StorageNone
	}
}

// PrecisionQual is highp / mediump / lowp.
type PrecisionQual uint8

const (
	PrecisionNone PrecisionQual = iota
	PrecisionHigh
	PrecisionMedium
	PrecisionLow
)

func (p PrecisionQual) String() string {
	switch p {
	case PrecisionHigh:
		return "highp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionLow:
		return "lowp"
	default:
		return ""
	}
}

func PrecisionFromToken(k token.Kind) PrecisionQual {
	switch k {
	case token.KwHighp:
		return PrecisionHigh
	case token.KwMediump:
		return PrecisionMedium
	case token.KwLowp:
		return PrecisionLow
	default:
		return PrecisionNone
	}
}

// ParamQual is the direction of a function parameter.
type ParamQual uint8

const (
	ParamNone ParamQual = iota
	ParamIn
	ParamOut
	ParamInout
)

func (p ParamQual) String() string {
	switch p {
	case ParamIn:
		return "in"
	case ParamOut:
		return "out"
	case ParamInout:
		return "inout"
	default:
		return ""
	}
}

func ParamFromToken(k token.Kind) ParamQual {
	switch k {
	case token.KwIn:
		return ParamIn
	case token.KwOut:
		return ParamOut
	case token.KwInout:
		return ParamInout
	default:
		return ParamNone
	}
}

// Qualifiers collects the type qualifiers written before a declaration.
// Precision lives on TypeSpec, where the grammar puts it.
type Qualifiers struct {
	Storage   StorageQual
	Param     ParamQual
	Invariant bool
	Span      source.Span // zero when nothing was written
}

// Empty reports whether no qualifier keyword was seen.
func (q Qualifiers) Empty() bool {
	return q.Storage == StorageNone && q.Param == ParamNone && !q.Invariant
}

func (q Qualifiers) String() string {
	var parts []string
	if q.Invariant {
		parts = append(parts, "invariant")
	}
	if q.Storage != StorageNone {
		parts = append(parts, q.Storage.String())
	}
	if q.Param != ParamNone {
		parts = append(parts, q.Param.String())
	}
	return strings.Join(parts, " ")
}
