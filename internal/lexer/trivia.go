package lexer

import (
	"glsles/internal/diag"
	"glsles/internal/token"
)

// collectLeadingTrivia gathers hidden-channel material before the next token:
//   - runs of ' ', '\t', '\r', '\f', '\v' -> TriviaSpace
//   - runs of '\n' -> TriviaNewline
//   - // ... up to '\n' -> TriviaLineComment
//   - /* ... */ up to the first "*/" -> TriviaBlockComment
//   - # ... up to '\n' -> TriviaDirective (never expanded)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '#':
			lx.skipToEOL()
			lx.pushTrivia(token.TriviaDirective, start)
			continue

		case b == '/':
			if lx.scanComment() {
				continue
			}
		}
		return
	}
}

func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		lx.skipToEOL()
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.BumpN(2)
		closed := false
		for !lx.cursor.EOF() {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.BumpN(2)
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		if !closed {
			lx.fatal = true
			if lx.opts.Reporter != nil {
				diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedBlockComment, lx.EmptySpan(), "unterminated block comment at end of input").
					WithNote(lx.cursor.SpanN(start, 2), "comment starts here").
					Emit()
			}
		}
		return true
	}
	return false
}

func (lx *Lexer) skipToEOL() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
