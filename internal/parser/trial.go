package parser

import (
	"glsles/internal/ast"
	"glsles/internal/source"
)

// checkpoint: точка сохранения для пробного разбора. Откат восстанавливает
// позицию в буфере токенов, длины арен AST и отложенные диагностики.
type checkpoint struct {
	pos      int
	lastSpan source.Span
	nodes    ast.Mark
	pending  int
}

func (p *Parser) mark() checkpoint {
	return checkpoint{
		pos:      p.pos,
		lastSpan: p.lastSpan,
		nodes:    p.b.Mark(),
		pending:  len(p.pending),
	}
}

func (p *Parser) rewind(c checkpoint) {
	p.pos = c.pos
	p.lastSpan = c.lastSpan
	p.b.Rollback(c.nodes)
	p.pending = p.pending[:c.pending]
}

// try runs fn as a trial parse. On failure every effect of fn is undone and
// the zero value is returned; the furthest-failure record is kept so the
// caller can still report what was expected. On success at the outermost
// level the diagnostics fn produced are released to the reporter.
func try[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	c := p.mark()
	p.trial++
	v, ok := fn()
	p.trial--
	if !ok {
		p.rewind(c)
		var zero T
		return zero, false
	}
	if p.trial == 0 {
		p.flushPending(c.pending)
	}
	return v, true
}

func (p *Parser) speculating() bool { return p.trial > 0 }
