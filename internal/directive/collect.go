package directive

import (
	"errors"
	"fmt"
	"strings"

	"glsles/internal/diag"
	"glsles/internal/token"
)

type Options struct {
	// Reporter receives DIR* warnings; nil drops them.
	Reporter diag.Reporter
}

// Collect parses every directive trivia in toks. Malformed lines are
// reported and kept with whatever could be recovered. Directives never
// stop the shader from being parsed, so all findings are warnings.
func Collect(toks []token.Token, opts Options) *Set {
	set := NewSet()
	seenCode := false // значимый токен или другая директива до #version
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Kind != token.TriviaDirective {
				continue
			}
			d, err := Parse(tr)
			switch {
			case err != nil:
				warn(opts, diag.DirMalformed, d, strings.TrimPrefix(err.Error(), ErrMalformed.Error()+": "))
			case d.Kind == KindVersion && seenCode:
				warn(opts, diag.DirVersionNotFirst, d, "#version must come before anything else in the shader")
			case d.Kind == KindExtension && !ValidBehavior(d.Value):
				warn(opts, diag.DirUnknownBehavior, d,
					fmt.Sprintf("unknown behavior '%s' for extension %s (want require, enable, warn or disable)", d.Value, d.Name))
			}
			set.Add(d)
			if d.Kind != KindEmpty {
				seenCode = true
			}
		}
		if tok.Kind != token.EOF && tok.Kind != token.Invalid {
			seenCode = true
		}
	}
	return set
}

func warn(opts Options, code diag.Code, d Directive, msg string) {
	diag.ReportWarning(opts.Reporter, code, d.Span, msg).Emit()
}

// IsMalformed reports whether err came from Parse.
func IsMalformed(err error) bool { return errors.Is(err, ErrMalformed) }
