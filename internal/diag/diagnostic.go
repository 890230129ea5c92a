package diag

import (
	"glsles/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Kind is a shortcut for d.Code.Kind().
func (d *Diagnostic) Kind() Kind {
	return d.Code.Kind()
}

// Position resolves the primary span to line, column and byte offset.
func (d *Diagnostic) Position(fs *source.FileSet) source.Position {
	return fs.Position(d.Primary)
}

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
