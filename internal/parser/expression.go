package parser

import (
	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/source"
	"glsles/internal/token"
)

// parseExpression: expression: assignment (',' assignment)*
func (p *Parser) parseExpression() (ast.ExprID, bool) {
	first, ok := p.parseAssignment()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	items := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.parseAssignment()
		if !ok {
			return ast.NoExprID, false
		}
		items = append(items, next)
	}
	sp := p.exprSpan(first).Cover(p.lastSpan)
	return p.b.Exprs.NewComma(sp, items), true
}

// parseAssignment tries `unary assignment-op` first and otherwise falls back
// to a conditional expression. The fallback never re-reads the unary
// expression: a conditional expression starts with exactly that unary
// operand, so it is handed down the cascade as the leftmost operand.
func (p *Parser) parseAssignment() (ast.ExprID, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}

	if op, isAssign := ast.AssignOpFromToken(p.peek().Kind); isAssign {
		opTok := p.advance()
		if op.Reserved() {
			p.reserved(opTok)
		}
		rhs, ok := p.parseAssignment()
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.exprSpan(lhs).Cover(p.exprSpan(rhs))
		return p.b.Exprs.NewAssign(sp, op, lhs, rhs), true
	}

	return p.parseConditionalFrom(lhs)
}

// parseConditional: constant-expression in grammar terms (array sizes).
func (p *Parser) parseConditional() (ast.ExprID, bool) {
	return p.parseConditionalFrom(ast.NoExprID)
}

// parseConditionalFrom: logical-or ('?' expression ':' assignment)?
// first, when valid, is an already parsed leftmost unary operand.
func (p *Parser) parseConditionalFrom(first ast.ExprID) (ast.ExprID, bool) {
	cond, ok := p.parseBinary(0, first)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	p.advance()
	then, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssignment()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.exprSpan(cond).Cover(p.exprSpan(els))
	return p.b.Exprs.NewTernary(sp, cond, then, els), true
}

// parseBinary разбирает уровень level таблицы binaryLevels.
func (p *Parser) parseBinary(level int, first ast.ExprID) (ast.ExprID, bool) {
	if level == len(binaryLevels) {
		if first.IsValid() {
			return first, true
		}
		return p.parseUnary()
	}

	left, ok := p.parseBinary(level+1, first)
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, isOp := matchBinary(level, p.peek().Kind)
		if !isOp {
			return left, true
		}
		opTok := p.advance()
		if op.Reserved() {
			p.reserved(opTok)
		}
		right, ok := p.parseBinary(level+1, ast.NoExprID)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.b.Exprs.NewBinary(sp, op, left, right)
	}
}

// parseUnary: prefix operators, then postfix.
func (p *Parser) parseUnary() (ast.ExprID, bool) {
	tok := p.peek()
	op, isPrefix := prefixOps[tok.Kind]
	if !isPrefix {
		return p.parsePostfix()
	}
	p.advance()
	if op == ast.UnaryBitNot {
		p.reserved(tok)
	}
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewUnary(tok.Span.Cover(p.exprSpan(operand)), op, operand), true
}

// parsePostfix: primary followed by any number of [index], .field, ++, --.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		start := p.exprSpan(expr)
		switch p.peek().Kind {
		case token.LBracket:
			open := p.advance()
			idx, ok := p.parseExpression()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expectClose(token.RBracket, open); !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewIndex(p.spanFrom(start), expr, idx)

		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewField(p.spanFrom(start), expr, name.Text, name.Span)

		case token.PlusPlus, token.MinusMinus:
			op := ast.PostInc
			if p.advance().Kind == token.MinusMinus {
				op = ast.PostDec
			}
			expr = p.b.Exprs.NewPostfix(p.spanFrom(start), op, expr)

		default:
			return expr, true
		}
	}
}

// parsePrimary: a call is tried before a bare variable reference.
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch {
	case identLike(tok.Kind):
		if p.peekAt(1).Kind == token.LParen {
			if call, ok := try(p, p.parseCall); ok {
				return call, true
			}
		}
		p.advance()
		return p.b.Exprs.NewIdent(tok.Span, tok.Text), true

	case tok.Kind.IsBuiltinType() && tok.Kind != token.KwVoid:
		return p.parseCall()

	case tok.Kind == token.IntLit:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitInt, tok.Text), true
	case tok.Kind == token.FloatLit:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitFloat, tok.Text), true
	case tok.Kind == token.BoolLit:
		p.advance()
		return p.b.Exprs.NewLiteral(tok.Span, ast.LitBool, tok.Text), true

	case tok.Kind == token.LParen:
		open := p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expectClose(token.RParen, open); !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewGroup(p.spanFrom(open.Span), inner), true
	}

	p.expected(diag.SynExpectExpression, "expression", exprStart...)
	return ast.NoExprID, false
}

// parseCall: function call or constructor: callee '(' ('void' | args)? ')'.
// The callee is an identifier, `main`, or a builtin type keyword.
func (p *Parser) parseCall() (ast.ExprID, bool) {
	callee := p.advance()
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoExprID, false
	}

	var args []ast.ExprID
	void := false
	switch {
	case p.at(token.KwVoid) && p.peekAt(1).Kind == token.RParen:
		p.advance()
		void = true
	case p.at(token.RParen):
	default:
		for {
			arg, ok := p.parseAssignment()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return ast.NoExprID, false
	}

	sp := p.spanFrom(callee.Span)
	if callee.Kind.IsBuiltinType() {
		return p.b.Exprs.NewConstructor(sp, callee.Kind, callee.Span, args, void), true
	}
	return p.b.Exprs.NewCall(sp, callee.Text, callee.Span, args, void), true
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

func (p *Parser) reserved(tok token.Token) {
	p.errorAt(diag.SynReservedOperator, tok.Span, "operator "+tok.Kind.Display()+" is reserved in GLSL ES")
}
