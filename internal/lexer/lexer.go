package lexer

import (
	"glsles/internal/source"
	"glsles/internal/token"
)

// Lexer produces GLSL ES tokens on demand. One Lexer per file; it is not
// safe for concurrent use and shares nothing with other lexers.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // одноэлементный буфер для Peek
	hold   []token.Trivia // накопленные leading trivia
	fatal  bool           // fatal lex error seen: next token is the terminal Invalid
	done   bool           // terminal token emitted: only EOF from now on
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next significant token with its Leading trivia filled in.
// After EOF (or the terminal Invalid token) it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.fatal {
		// Явный токен-ошибка в конце потока: парсер увидит его и сможет восстановиться.
		lx.done = true
		return lx.withLeading(token.Token{Kind: token.Invalid, Span: lx.EmptySpan()})
	}
	if lx.cursor.EOF() {
		lx.done = true
		return lx.withLeading(token.Token{Kind: token.EOF, Span: lx.EmptySpan()})
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	return lx.withLeading(tok)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is the zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) withLeading(tok token.Token) token.Token {
	if len(lx.hold) > 0 {
		tok.Leading = lx.hold
		lx.hold = nil
	}
	return tok
}

// All drains a fresh lexer over file. The last token is always EOF.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}
