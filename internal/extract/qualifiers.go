package extract

import (
	"strings"

	"glsles/internal/ast"
)

// QualifierSet is a bitset of the qualifier keywords a declaration carried.
type QualifierSet uint16

const (
	QualConst QualifierSet = 1 << iota
	QualAttribute
	QualVarying
	QualUniform
	QualInvariant
	QualIn
	QualOut
	QualInout
	QualHighp
	QualMediump
	QualLowp
)

var qualifierNames = [...]struct {
	bit  QualifierSet
	name string
}{
	{QualInvariant, "invariant"},
	{QualConst, "const"},
	{QualAttribute, "attribute"},
	{QualVarying, "varying"},
	{QualUniform, "uniform"},
	{QualIn, "in"},
	{QualOut, "out"},
	{QualInout, "inout"},
	{QualHighp, "highp"},
	{QualMediump, "mediump"},
	{QualLowp, "lowp"},
}

func (q QualifierSet) Has(bit QualifierSet) bool { return q&bit == bit }

// Names lists the set qualifiers in declaration order: invariant, storage,
// parameter direction, precision.
func (q QualifierSet) Names() []string {
	var out []string
	for _, qn := range qualifierNames {
		if q.Has(qn.bit) {
			out = append(out, qn.name)
		}
	}
	return out
}

func (q QualifierSet) String() string {
	return strings.Join(q.Names(), " ")
}

// Precision returns the precision bit as an ast value.
func (q QualifierSet) Precision() ast.PrecisionQual {
	switch {
	case q.Has(QualHighp):
		return ast.PrecisionHigh
	case q.Has(QualMediump):
		return ast.PrecisionMedium
	case q.Has(QualLowp):
		return ast.PrecisionLow
	}
	return ast.PrecisionNone
}

func qualifierSet(q ast.Qualifiers, prec ast.PrecisionQual) QualifierSet {
	var s QualifierSet
	switch q.Storage {
	case ast.StorageConst:
		s |= QualConst
	case ast.StorageAttribute:
		s |= QualAttribute
	case ast.StorageVarying:
		s |= QualVarying
	case ast.StorageUniform:
		s |= QualUniform
	case ast.StorageIn:
		s |= QualIn
	case ast.StorageOut:
		s |= QualOut
	}
	switch q.Param {
	case ast.ParamIn:
		s |= QualIn
	case ast.ParamOut:
		s |= QualOut
	case ast.ParamInout:
		s |= QualInout
	}
	if q.Invariant {
		s |= QualInvariant
	}
	switch prec {
	case ast.PrecisionHigh:
		s |= QualHighp
	case ast.PrecisionMedium:
		s |= QualMediump
	case ast.PrecisionLow:
		s |= QualLowp
	}
	return s
}
