package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Kind is the stage taxonomy callers filter on.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLexical
	KindSyntactic
	KindExtraction
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindSyntactic:
		return "syntactic"
	case KindExtraction:
		return "extraction"
	case KindIO:
		return "io"
	}
	return "unknown"
}
