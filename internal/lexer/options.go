package lexer

import (
	"glsles/internal/diag"
	"glsles/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics; nil drops them.
	Reporter diag.Reporter
	// SkipUnknown keeps lexing after an unrecognized character instead of
	// ending the stream with an Invalid token.
	SkipUnknown bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
