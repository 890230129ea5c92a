package lexer

import (
	"fmt"
	"unicode/utf8"

	"glsles/internal/diag"
	"glsles/internal/token"
)

// threeByteOps проверяются раньше двухбайтовых: <<= не должен стать << и =.
var threeByteOps = [...]struct {
	a, b, c byte
	kind    token.Kind
}{
	{'<', '<', '=', token.ShlAssign},
	{'>', '>', '=', token.ShrAssign},
}

var twoByteOps = [...]struct {
	a, b byte
	kind token.Kind
}{
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'&', '&', token.AndAnd},
	{'^', '^', token.XorXor},
	{'|', '|', token.OrOr},
	{'+', '+', token.PlusPlus},
	{'-', '-', token.MinusMinus},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
	{'<', '<', token.ShiftLeft},
	{'>', '>', token.ShiftRight},
	{'&', '=', token.AmpAssign},
	{'|', '=', token.PipeAssign},
	{'^', '=', token.CaretAssign},
}

var oneByteOps = [256]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace,
	'.': token.Dot, ',': token.Comma, ':': token.Colon, ';': token.Semicolon, '?': token.Question,
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'!': token.Bang, '<': token.Lt, '>': token.Gt, '=': token.Assign,
	'%': token.Percent, '~': token.Tilde, '&': token.Amp, '|': token.Pipe, '^': token.Caret,
}

// scanOperatorOrPunct is greedy: longer operators win over their prefixes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range threeByteOps {
		if lx.try3(op.a, op.b, op.c) {
			return lx.emit(op.kind, start)
		}
	}
	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Peek()
	if k := oneByteOps[ch]; k != token.Invalid {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}
	return lx.unknownChar(start)
}

// unknownChar reports the offending character (a whole UTF-8 rune when
// possible) and, unless SkipUnknown is set, ends the stream.
func (lx *Lexer) unknownChar(start Mark) token.Token {
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	if size <= 0 {
		size = 1
	}
	lx.cursor.BumpN(uint32(size)) // #nosec G115 -- size <= utf8.UTFMax
	sp := lx.cursor.SpanFrom(start)

	var msg string
	if r == utf8.RuneError {
		msg = fmt.Sprintf("unexpected byte 0x%02x", lx.file.Content[sp.Start])
	} else {
		msg = fmt.Sprintf("unexpected character %q", r)
	}
	lx.errLex(diag.LexUnknownChar, sp, msg)

	if !lx.opts.SkipUnknown {
		// лексинг дальше не продолжаем: это терминальный токен потока
		lx.done = true
		lx.cursor.Off = lx.cursor.Limit
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
