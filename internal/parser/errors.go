package parser

import (
	"fmt"
	"slices"
	"strings"

	"glsles/internal/diag"
	"glsles/internal/source"
	"glsles/internal/token"
)

// ParseError describes a construct that no alternative could match. Span
// and Found refer to the furthest token any alternative reached; Expected
// lists the token kinds that would have been accepted there.
type ParseError struct {
	Code     diag.Code
	Span     source.Span
	Found    token.Kind
	Expected []token.Kind
	Message  string
}

func (e ParseError) Error() string { return e.Message }

// expectation accumulates what the alternatives of the current construct
// wanted at the furthest position reached.
type expectation struct {
	set   bool
	pos   int
	code  diag.Code
	kinds []token.Kind
	what  []string
	note  *diag.Note
	mixed bool // code collapsed to SynUnexpectedToken after a conflict
}

type pendingDiag struct {
	code  diag.Code
	sev   diag.Severity
	span  source.Span
	msg   string
	notes []diag.Note
}

func (p *Parser) beginConstruct() {
	if p.speculating() {
		return
	}
	p.exp = expectation{}
}

// expected records that the current position wanted kinds (described as
// what when the set is a whole category such as "expression").
func (p *Parser) expected(code diag.Code, what string, kinds ...token.Kind) {
	p.expectedWithNote(code, nil, what, kinds...)
}

func (p *Parser) expectedWithNote(code diag.Code, note *diag.Note, what string, kinds ...token.Kind) {
	switch {
	case !p.exp.set || p.pos > p.exp.pos:
		p.exp = expectation{set: true, pos: p.pos, code: code, note: note}
	case p.pos < p.exp.pos:
		return
	case p.exp.code == code, code == diag.SynUnexpectedToken:
	case p.exp.code == diag.SynUnexpectedToken && !p.exp.mixed:
		// конкретный код важнее общего
		p.exp.code = code
		p.exp.note = note
	default:
		p.exp.code = diag.SynUnexpectedToken
		p.exp.note = nil
		p.exp.mixed = true
	}
	for _, k := range kinds {
		if !slices.Contains(p.exp.kinds, k) {
			p.exp.kinds = append(p.exp.kinds, k)
		}
	}
	labels := []string{what}
	if what == "" {
		labels = labels[:0]
		for _, k := range kinds {
			labels = append(labels, k.Display())
		}
	}
	for _, l := range labels {
		if !slices.Contains(p.exp.what, l) {
			p.exp.what = append(p.exp.what, l)
		}
	}
}

// expect consumes a token of kind k or records the expectation and fails.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.expected(code, "", k)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// expectClose is expect for a closing bracket; the diagnostic points back
// at the opener.
func (p *Parser) expectClose(k token.Kind, open token.Token) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	code := diag.SynUnclosedParen
	switch k {
	case token.RBrace:
		code = diag.SynUnclosedBrace
	case token.RBracket:
		code = diag.SynUnclosedBracket
	}
	note := &diag.Note{Span: open.Span, Msg: "to match this " + open.Kind.Display()}
	p.expectedWithNote(code, note, "", k)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// reportFailure turns the current expectation into a ParseError and a
// diagnostic. Called only at committed construct boundaries.
func (p *Parser) reportFailure() {
	if !p.exp.set {
		p.expected(diag.SynUnexpectedToken, "a declaration or statement")
	}
	pos := min(p.exp.pos, len(p.toks)-1)
	found := p.toks[pos]

	span := found.Span
	if p.exp.code == diag.SynExpectSemicolon && pos > 0 {
		// точка с запятой потерялась после предыдущего токена
		span = p.toks[pos-1].Span.EndPoint()
	}

	pe := ParseError{
		Code:     p.exp.code,
		Span:     span,
		Found:    found.Kind,
		Expected: slices.Clone(p.exp.kinds),
		Message:  fmt.Sprintf("expected %s, found %s", joinOr(p.exp.what), describe(found)),
	}
	p.errors = append(p.errors, pe)

	// лексер уже сообщил о своей ошибке, повторять не нужно
	if found.Kind == token.Invalid {
		return
	}
	var notes []diag.Note
	if p.exp.note != nil {
		notes = append(notes, *p.exp.note)
	}
	p.report(pe.Code, diag.SevError, pe.Span, pe.Message, notes)
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.BoolLit:
		return fmt.Sprintf("%s '%s'", t.Kind.Display(), t.Text)
	default:
		return t.Kind.Display()
	}
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return "something else"
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}

// report sends a diagnostic, or parks it while a trial parse is running.
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if p.speculating() {
		p.pending = append(p.pending, pendingDiag{code: code, sev: sev, span: sp, msg: msg, notes: notes})
		return
	}
	p.emit(pendingDiag{code: code, sev: sev, span: sp, msg: msg, notes: notes})
}

func (p *Parser) emit(d pendingDiag) {
	if d.sev == diag.SevError {
		p.opts.CurrentErrors++
		if p.opts.MaxErrors > 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
			return
		}
	}
	if p.opts.Reporter == nil {
		return
	}
	p.opts.Reporter.Report(d.code, d.sev, d.span, d.msg, d.notes)
}

func (p *Parser) flushPending(from int) {
	for _, d := range p.pending[from:] {
		p.emit(d)
	}
	p.pending = p.pending[:from]
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevWarning, sp, msg, nil)
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg, nil)
}
