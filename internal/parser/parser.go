package parser

import (
	"context"
	"fmt"
	"slices"

	"fortio.org/safecast"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/lexer"
	"glsles/internal/source"
	"glsles/internal/token"
	"glsles/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit   ast.UnitID
	Errors []ParseError
	// Incomplete is set when parsing stopped before EOF: error cap reached
	// or the context was cancelled.
	Incomplete bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token // весь поток значимых токенов, последний всегда EOF
	pos      int
	b        *ast.Builder
	fs       *source.FileSet
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена

	trial   int           // глубина вложенных пробных разборов
	pending []pendingDiag // диагностики, отложенные внутри пробных разборов
	exp     expectation   // самая дальняя точка отказа текущей конструкции
	errors  []ParseError
	capped  bool
}

// ParseFile разбирает один файл целиком. Лексер читается до EOF заранее:
// пробные разборы откатываются по индексу в буфере токенов.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	b *ast.Builder,
	opts Options,
) Result {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return ParseTokens(ctx, fs, lx.File(), toks, b, opts)
}

// ParseTokens parses an already drained token stream of file. The stream
// must end with EOF, as produced by lexer.All.
func ParseTokens(
	ctx context.Context,
	fs *source.FileSet,
	file *source.File,
	toks []token.Token,
	b *ast.Builder,
	opts Options,
) Result {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		size, err := safecast.Conv[uint32](len(file.Content))
		if err != nil {
			panic(fmt.Errorf("file too large: %w", err))
		}
		end := source.Span{File: file.ID, Start: size, End: size}
		toks = append(slices.Clip(toks), token.Token{Kind: token.EOF, Span: end})
	}
	p := Parser{
		toks:     toks,
		b:        b,
		fs:       fs,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	unit, incomplete := p.parseTranslationUnit(ctx)
	return Result{
		Unit:       unit,
		Errors:     p.errors,
		Incomplete: incomplete,
	}
}

func (p *Parser) parseTranslationUnit(ctx context.Context) (ast.UnitID, bool) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	start := p.peek().Span
	decls := make([]ast.DeclID, 0, 16)
	incomplete := false
	for !p.at(token.EOF) {
		if ctx.Err() != nil {
			incomplete = true
			break
		}
		if p.opts.Enough() {
			p.tooManyErrors()
			incomplete = true
			break
		}

		sp := trace.Begin(tracer, trace.ScopeNode, "external_decl", parent)
		p.beginConstruct()
		declStart := p.pos
		nodes := p.b.Mark()
		id, ok := p.parseExternalDeclaration()
		if !ok {
			p.b.Rollback(nodes)
			p.reportFailure()
			p.recover(declStart, false)
			sp.End("error")
			continue
		}
		decls = append(decls, id)
		sp.WithExtra("kind", p.b.Decls.Get(id).Kind.String()).End("")
	}
	end := p.toks[len(p.toks)-1].Span
	return p.b.NewUnit(start.Cover(end), decls), incomplete
}

func (p *Parser) tooManyErrors() {
	if p.capped || p.opts.Reporter == nil {
		return
	}
	p.capped = true
	p.opts.Reporter.Report(diag.SynTooManyErrors, diag.SevWarning, p.peek().Span,
		"too many errors, parsing stopped", nil)
}

// recover skips at least one token past the start of the failed construct
// and at least up to the furthest failure, then stops at a resync point:
// ';' (consumed), '}' (left for the enclosing block) or a keyword that can
// begin a declaration or statement.
func (p *Parser) recover(start int, inBlock bool) {
	target := max(start+1, p.exp.pos)
	for p.pos < target && !p.at(token.EOF) {
		p.advance()
	}
	for !p.at(token.EOF) {
		k := p.peek().Kind
		switch {
		case k == token.Semicolon:
			p.advance()
			return
		case k == token.RBrace:
			if inBlock {
				return
			}
		case isSyncKeyword(k, inBlock):
			return
		}
		p.advance()
	}
}

// isSyncKeyword: ключевые слова, с которых точно начинается новая конструкция.
func isSyncKeyword(k token.Kind, inBlock bool) bool {
	if k.IsBuiltinType() || k.IsStorageQualifier() || k.IsPrecisionQualifier() {
		return true
	}
	switch k {
	case token.KwStruct, token.KwPrecision, token.KwInvariant:
		return true
	case token.KwIf, token.KwWhile, token.KwDo, token.KwFor,
		token.KwReturn, token.KwBreak, token.KwContinue, token.KwDiscard:
		return inBlock
	}
	return false
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens ahead; past the end it returns EOF.
func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

// advance: съедает текущий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// spanFrom covers everything from start to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

func identLike(k token.Kind) bool {
	return k == token.Ident || k == token.KwMain
}
