package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"glsles/internal/source"
	"glsles/internal/token"
)

// Kind is the directive name after `#`.
type Kind uint8

const (
	KindEmpty Kind = iota // a lone `#`
	KindVersion
	KindExtension
	KindPragma
	KindLine
	KindDefine
	// KindOther covers the conditionals and everything else; they are kept
	// as text and never evaluated.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindVersion:
		return "version"
	case KindExtension:
		return "extension"
	case KindPragma:
		return "pragma"
	case KindLine:
		return "line"
	case KindDefine:
		return "define"
	default:
		return "other"
	}
}

// Directive is one structured `#` line.
type Directive struct {
	Kind Kind
	Span source.Span
	Text string
	// Name is the word after `#`; for #extension the extension name, for
	// #define the macro name, for #pragma the pragma name.
	Name string
	// Number is the #version number or the #line number.
	Number int
	// Value is the #version profile, the #extension behavior or the
	// #line source string number.
	Value string
	Args  []string
}

// knownNames are directives with a grammar of their own; seeing one of
// them fall through to the generic form means its arguments were wrong.
var knownNames = map[string]Kind{
	"version":   KindVersion,
	"extension": KindExtension,
	"pragma":    KindPragma,
	"line":      KindLine,
	"define":    KindDefine,
}

// ErrMalformed wraps every parse failure returned by Parse.
var ErrMalformed = errors.New("malformed directive")

// Parse reads one directive trivia. On error the returned Directive still
// carries Kind, Span and Text so callers can keep it.
func Parse(tr token.Trivia) (Directive, error) {
	d := Directive{Kind: KindOther, Span: tr.Span, Text: strings.TrimRight(tr.Text, " \t\r")}
	ln, err := lineParser.ParseString("", d.Text)
	if err != nil {
		d.Name = firstWord(d.Text)
		if k, ok := knownNames[d.Name]; ok {
			d.Kind = k
		}
		return d, fmt.Errorf("%w: %s", ErrMalformed, describeErr(err))
	}

	switch {
	case ln.Version != nil:
		d.Kind = KindVersion
		d.Name = "version"
		d.Number = ln.Version.Number
		d.Value = ln.Version.Profile
	case ln.Extension != nil:
		d.Kind = KindExtension
		d.Name = ln.Extension.Name
		d.Value = ln.Extension.Behavior
	case ln.Pragma != nil:
		d.Kind = KindPragma
		d.Name = ln.Pragma.Name
		d.Args = ln.Pragma.Args
	case ln.Line != nil:
		d.Kind = KindLine
		d.Name = "line"
		d.Number = ln.Line.Number
		d.Value = ln.Line.Source
	case ln.Define != nil:
		d.Kind = KindDefine
		d.Name = ln.Define.Name
		d.Args = ln.Define.Body
	case ln.Other != nil:
		d.Name = ln.Other.Name
		d.Args = ln.Other.Args
		if k, ok := knownNames[d.Name]; ok {
			d.Kind = k
			return d, fmt.Errorf("%w: unexpected arguments to #%s", ErrMalformed, d.Name)
		}
	default:
		d.Kind = KindEmpty
	}
	return d, nil
}

func describeErr(err error) string {
	var perr participle.Error
	if errors.As(err, &perr) {
		return perr.Message()
	}
	return err.Error()
}

func firstWord(text string) string {
	rest := strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(text), "#"), " \t")
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	})
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// Behaviors accepted by #extension.
var behaviors = map[string]bool{"require": true, "enable": true, "warn": true, "disable": true}

// ValidBehavior reports whether b is an #extension behavior keyword.
func ValidBehavior(b string) bool { return behaviors[b] }

// Source returns the #line source-string number, if one was given.
func (d Directive) Source() (int, bool) {
	if d.Kind != KindLine || d.Value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(d.Value)
	return n, err == nil
}
