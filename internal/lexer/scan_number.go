package lexer

import (
	"glsles/internal/diag"
	"glsles/internal/token"
)

// scanNumber recognizes
//
//	decimal   [1-9][0-9]*
//	octal     0[0-7]*
//	hex       0[xX][0-9a-fA-F]+
//	float     digits '.' digits? exp? | '.' digits exp? | digits exp
//	exp       [eE][+-]?digits
//
// The raw text is kept; values are never computed here. Malformed
// constants are reported but still produce a literal token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if x := lx.cursor.PeekAt(1); x == 'x' || x == 'X' {
			lx.cursor.BumpN(2)
			n := 0
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
				n++
			}
			if n == 0 {
				lx.badNumber(start, "hexadecimal constant needs at least one digit")
			}
			return lx.emit(token.IntLit, start)
		}
	}

	leadingZero := lx.cursor.Peek() == '0'
	badOctal := false
	for isDec(lx.cursor.Peek()) {
		if leadingZero && lx.cursor.Peek() > '7' {
			badOctal = true
		}
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.badNumber(start, "exponent has no digits")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if kind == token.IntLit && badOctal {
		lx.badNumber(start, "invalid digit in octal constant")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) {
	lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), msg)
}
