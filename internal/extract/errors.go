package extract

import (
	"glsles/internal/diag"
	"glsles/internal/source"
)

// Options controls one extraction run.
type Options struct {
	Reporter diag.Reporter
	// RequireMain adds an ExtNoMain warning when `void main()` is not defined.
	RequireMain bool
}

// ExtractError is a declaration that could not be added to the table. The
// offending entry is left out and extraction continues.
type ExtractError struct {
	Code     diag.Code
	Severity diag.Severity
	Span     source.Span
	Message  string
	// Previous points at the earlier declaration for duplicate errors.
	Previous source.Span
}

func (e ExtractError) Error() string { return e.Message }

func (ex *extractor) report(code diag.Code, sev diag.Severity, sp, prev source.Span, msg string) {
	ex.errs = append(ex.errs, ExtractError{Code: code, Severity: sev, Span: sp, Message: msg, Previous: prev})
	b := diag.NewReportBuilder(ex.opts.Reporter, sev, code, sp, msg)
	if prev != (source.Span{}) {
		b.WithNote(prev, "previous declaration is here")
	}
	b.Emit()
}

func (ex *extractor) errorAt(code diag.Code, sp, prev source.Span, msg string) {
	ex.report(code, diag.SevError, sp, prev, msg)
}

func (ex *extractor) warn(code diag.Code, sp source.Span, msg string) {
	ex.report(code, diag.SevWarning, sp, source.Span{}, msg)
}
