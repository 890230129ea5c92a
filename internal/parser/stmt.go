package parser

import (
	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/token"
)

// parseBlock: '{' statement* '}'. Outside of trial parses a failed
// statement is reported and skipped so the rest of the block still parses.
func (p *Parser) parseBlock(newScope bool) (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoStmtID, false
	}
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.speculating() {
			id, ok := p.parseStatement(true)
			if !ok {
				return ast.NoStmtID, false
			}
			stmts = append(stmts, id)
			continue
		}
		if p.opts.Enough() {
			break
		}
		p.beginConstruct()
		start := p.pos
		nodes := p.b.Mark()
		id, ok := p.parseStatement(true)
		if !ok {
			p.b.Rollback(nodes)
			p.reportFailure()
			p.recover(start, true)
			continue
		}
		stmts = append(stmts, id)
	}
	if !p.speculating() {
		p.beginConstruct()
	}
	if _, ok := p.expectClose(token.RBrace, open); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewBlock(p.spanFrom(open.Span), stmts, newScope), true
}

// parseStatement tries, in order: declaration, expression statement, then
// the keyword-led forms. newScope applies when the statement is a block.
func (p *Parser) parseStatement(newScope bool) (ast.StmtID, bool) {
	tok := p.peek()

	if canStartDeclaration(tok.Kind) {
		if id, ok := try(p, p.parseDeclarationStatement); ok {
			return id, true
		}
	}
	if canStartExpression(tok.Kind) {
		if id, ok := try(p, p.parseExpressionStatement); ok {
			return id, true
		}
	}

	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock(newScope)
	case token.Semicolon:
		p.advance()
		return p.b.Stmts.New(ast.StmtEmpty, tok.Span), true
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwContinue:
		return p.parseJump(ast.StmtContinue)
	case token.KwBreak:
		return p.parseJump(ast.StmtBreak)
	case token.KwDiscard:
		return p.parseJump(ast.StmtDiscard)
	case token.KwReturn:
		return p.parseReturn()
	}

	if !canStartDeclaration(tok.Kind) && !canStartExpression(tok.Kind) {
		p.expected(diag.SynExpectStatement, "statement")
	}
	return ast.NoStmtID, false
}

func (p *Parser) parseDeclarationStatement() (ast.StmtID, bool) {
	start := p.peek().Span
	decl, ok := p.parseDeclaration(false)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewDecl(p.spanFrom(start), decl), true
}

func (p *Parser) parseExpressionStatement() (ast.StmtID, bool) {
	start := p.peek().Span
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewExpr(p.spanFrom(start), expr), true
}

// parseIf: 'if' '(' expression ')' statement ('else' statement)?
// The two-branch form is preferred: an `else` always attaches to the
// innermost `if` still waiting for one.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStatement(true)
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStatement(true)
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.b.Stmts.NewIf(p.spanFrom(start), cond, then, els), true
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoExprID, false
	}
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return ast.NoExprID, false
	}
	return expr, true
}

// parseWhile: 'while' '(' condition ')' statement-no-new-scope
func (p *Parser) parseWhile() (ast.StmtID, bool) {
	start := p.advance().Span
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStatement(false)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewWhile(p.spanFrom(start), cond, body), true
}

// parseDoWhile: 'do' statement 'while' '(' expression ')' ';'
func (p *Parser) parseDoWhile() (ast.StmtID, bool) {
	start := p.advance().Span
	body, ok := p.parseStatement(true)
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewDoWhile(p.spanFrom(start), body, cond), true
}

// parseFor: 'for' '(' for-init condition? ';' expression? ')' statement-no-new-scope
func (p *Parser) parseFor() (ast.StmtID, bool) {
	start := p.advance().Span
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoStmtID, false
	}

	var init ast.StmtID
	switch {
	case p.at(token.Semicolon):
		init = p.b.Stmts.New(ast.StmtEmpty, p.advance().Span)
	default:
		if canStartDeclaration(p.peek().Kind) {
			init, ok = try(p, p.parseDeclarationStatement)
		}
		if !init.IsValid() {
			init, ok = p.parseExpressionStatement()
			if !ok {
				return ast.NoStmtID, false
			}
		}
	}

	var cond ast.Condition
	if !p.at(token.Semicolon) {
		cond, ok = p.parseCondition()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}

	step := ast.NoExprID
	if !p.at(token.RParen) {
		step, ok = p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expectClose(token.RParen, open); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStatement(false)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewFor(p.spanFrom(start), init, cond, step, body), true
}

// parseCondition: expression | fully-specified-type IDENT '=' initializer
func (p *Parser) parseCondition() (ast.Condition, bool) {
	if canStartDeclaration(p.peek().Kind) {
		if decl, ok := try(p, p.parseConditionDecl); ok {
			return ast.Condition{Decl: decl}, true
		}
	}
	expr, ok := p.parseExpression()
	if !ok {
		return ast.Condition{}, false
	}
	return ast.Condition{Expr: expr}, true
}

func (p *Parser) parseConditionDecl() (ast.DeclID, bool) {
	start := p.peek().Span
	quals := p.parseQualifiers(qualGlobal)
	ty, ok := p.parseTypeSpecifier()
	if !ok {
		return ast.NoDeclID, false
	}
	if !identLike(p.peek().Kind) {
		p.expected(diag.SynExpectIdentifier, "", token.Ident)
		return ast.NoDeclID, false
	}
	name := p.advance()
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return ast.NoDeclID, false
	}
	init, ok := p.parseAssignment()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.b.Decls.NewVariables(p.spanFrom(start), ast.VariablesDecl{
		Qualifiers: quals,
		Type:       ty,
		Declarators: []ast.Declarator{{
			Name:     name.Text,
			NameSpan: name.Span,
			Init:     init,
			Span:     p.spanFrom(name.Span),
		}},
	}), true
}

// parseJump: continue ';' | break ';' | discard ';'
func (p *Parser) parseJump(kind ast.StmtKind) (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.New(kind, p.spanFrom(start)), true
}

// parseReturn: 'return' expression? ';'
func (p *Parser) parseReturn() (ast.StmtID, bool) {
	start := p.advance().Span
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		value, ok = p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewReturn(p.spanFrom(start), value), true
}
