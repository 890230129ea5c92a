package parser

import (
	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/source"
	"glsles/internal/token"
)

// parseExternalDeclaration: function definition or declaration at top level.
func (p *Parser) parseExternalDeclaration() (ast.DeclID, bool) {
	return p.parseDeclaration(true)
}

// parseDeclaration dispatches between the declaration forms. Function
// definitions are only allowed when allowBody is set (top level).
func (p *Parser) parseDeclaration(allowBody bool) (ast.DeclID, bool) {
	switch {
	case p.at(token.KwPrecision):
		return p.parsePrecision()
	case p.at(token.KwInvariant) && identLike(p.peekAt(1).Kind) &&
		p.peekAt(2).Kind != token.Ident && p.peekAt(2).Kind != token.KwMain:
		return p.parseInvariantDecl()
	}

	if hdr, ok := try(p, p.parseFunctionHeader); ok {
		return p.parseFunctionRest(hdr, allowBody)
	}
	return p.parseInitDeclaratorList()
}

type funcHeader struct {
	start source.Span
	ret   ast.TypeID
	name  token.Token
	open  token.Token
}

// parseFunctionHeader: fully-specified-type IDENT '('
func (p *Parser) parseFunctionHeader() (funcHeader, bool) {
	start := p.peek().Span
	quals := p.parseQualifiers(qualGlobal)
	ret, ok := p.parseTypeSpecifier()
	if !ok {
		return funcHeader{}, false
	}
	if !identLike(p.peek().Kind) {
		p.expected(diag.SynExpectIdentifier, "", token.Ident)
		return funcHeader{}, false
	}
	name := p.advance()
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return funcHeader{}, false
	}
	if !quals.Empty() {
		p.errorAt(diag.SynBadDeclaration, quals.Span, "qualifiers are not allowed on a function return type")
	}
	return funcHeader{start: start, ret: ret, name: name, open: open}, true
}

// parseFunctionRest: parameters ')' (';' | compound-statement-no-new-scope)
func (p *Parser) parseFunctionRest(hdr funcHeader, allowBody bool) (ast.DeclID, bool) {
	fn := ast.FunctionDecl{
		Return:   hdr.ret,
		Name:     hdr.name.Text,
		NameSpan: hdr.name.Span,
	}

	switch {
	case p.at(token.KwVoid) && p.peekAt(1).Kind == token.RParen:
		p.advance()
		fn.Void = true
	case p.at(token.RParen):
	default:
		for {
			param, ok := p.parseParam()
			if !ok {
				return ast.NoDeclID, false
			}
			fn.Params = append(fn.Params, param)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expectClose(token.RParen, hdr.open); !ok {
		return ast.NoDeclID, false
	}

	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace) && allowBody:
		body, ok := p.parseBlock(false)
		if !ok {
			return ast.NoDeclID, false
		}
		fn.Body = body
	default:
		if allowBody {
			p.expected(diag.SynUnexpectedToken, "", token.Semicolon, token.LBrace)
		} else {
			p.expected(diag.SynExpectSemicolon, "", token.Semicolon)
		}
		return ast.NoDeclID, false
	}
	return p.b.Decls.NewFunction(p.spanFrom(hdr.start), fn), true
}

// parseParam: qualifiers type-specifier (IDENT array?)? ; the name may be
// omitted in prototypes.
func (p *Parser) parseParam() (ast.ParamID, bool) {
	start := p.peek().Span
	quals := p.parseQualifiers(qualParam)
	ty, ok := p.parseTypeSpecifier()
	if !ok {
		return ast.NoParamID, false
	}
	param := ast.Param{Qualifiers: quals, Type: ty}
	if identLike(p.peek().Kind) {
		name := p.advance()
		param.Name = name.Text
		param.NameSpan = name.Span
	}
	arr, ok := p.parseArraySpec()
	if !ok {
		return ast.NoParamID, false
	}
	param.Array = arr
	param.Span = p.spanFrom(start)
	return p.b.Decls.NewParam(param), true
}

// parseInitDeclaratorList: fully-specified-type (declarator (',' declarator)*)? ';'
// A list without declarators is a bare struct declaration when the type is a
// struct specifier; for keyword types it declares nothing. A type given by
// name must be followed by a declarator, otherwise `x;` would never reach
// the expression-statement alternative.
func (p *Parser) parseInitDeclaratorList() (ast.DeclID, bool) {
	start := p.peek().Span
	quals := p.parseQualifiers(qualGlobal)
	ty, ok := p.parseTypeSpecifier()
	if !ok {
		return ast.NoDeclID, false
	}

	if p.at(token.Semicolon) {
		switch p.b.Types.Get(ty).Kind {
		case ast.TypeStruct:
			p.advance()
			return p.b.Decls.NewStruct(p.spanFrom(start), ast.StructDecl{Qualifiers: quals, Type: ty}), true
		case ast.TypeBuiltin:
			p.advance()
			return p.b.Decls.NewVariables(p.spanFrom(start), ast.VariablesDecl{Qualifiers: quals, Type: ty}), true
		}
		p.expected(diag.SynExpectIdentifier, "", token.Ident)
		return ast.NoDeclID, false
	}

	vars := ast.VariablesDecl{Qualifiers: quals, Type: ty}
	for {
		d, ok := p.parseDeclarator()
		if !ok {
			return ast.NoDeclID, false
		}
		vars.Declarators = append(vars.Declarators, d)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoDeclID, false
	}
	return p.b.Decls.NewVariables(p.spanFrom(start), vars), true
}

// parseDeclarator: IDENT array? ('=' initializer)?
func (p *Parser) parseDeclarator() (ast.Declarator, bool) {
	if !identLike(p.peek().Kind) {
		p.expected(diag.SynExpectIdentifier, "", token.Ident)
		return ast.Declarator{}, false
	}
	name := p.advance()
	d := ast.Declarator{Name: name.Text, NameSpan: name.Span}
	arr, ok := p.parseArraySpec()
	if !ok {
		return ast.Declarator{}, false
	}
	d.Array = arr
	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseAssignment()
		if !ok {
			return ast.Declarator{}, false
		}
		d.Init = init
	}
	d.Span = p.spanFrom(name.Span)
	return d, true
}

// parsePrecision: 'precision' precision-qualifier type-specifier? ';'
// A missing type is accepted here and rejected by the extractor.
func (p *Parser) parsePrecision() (ast.DeclID, bool) {
	start := p.advance().Span
	if !p.peek().Kind.IsPrecisionQualifier() {
		p.expected(diag.SynUnexpectedToken, "", token.KwHighp, token.KwMediump, token.KwLowp)
		return ast.NoDeclID, false
	}
	precTok := p.advance()
	decl := ast.PrecisionDecl{
		Precision:     ast.PrecisionFromToken(precTok.Kind),
		PrecisionSpan: precTok.Span,
	}
	if !p.at(token.Semicolon) {
		ty, ok := p.parseTypeSpecifierNoPrec(p.peek().Span, ast.PrecisionNone)
		if !ok {
			return ast.NoDeclID, false
		}
		decl.Type = ty
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoDeclID, false
	}
	return p.b.Decls.NewPrecision(p.spanFrom(start), decl), true
}

// parseInvariantDecl: 'invariant' IDENT (',' IDENT)* ';'
func (p *Parser) parseInvariantDecl() (ast.DeclID, bool) {
	start := p.advance().Span
	var inv ast.InvariantDecl
	for {
		if !identLike(p.peek().Kind) {
			p.expected(diag.SynExpectIdentifier, "", token.Ident)
			return ast.NoDeclID, false
		}
		name := p.advance()
		inv.Names = append(inv.Names, ast.InvariantName{Name: name.Text, Span: name.Span})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoDeclID, false
	}
	return p.b.Decls.NewInvariant(p.spanFrom(start), inv), true
}
