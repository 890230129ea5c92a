package parser

import (
	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/source"
	"glsles/internal/token"
)

type qualContext uint8

const (
	qualGlobal qualContext = iota // top level and local declarations
	qualParam                     // function parameters
)

// parseQualifiers reads any run of storage, parameter and invariant
// keywords. It never fails: misuse is reported and the keyword dropped.
// Repeats of the same qualifier are accepted with a warning.
func (p *Parser) parseQualifiers(ctx qualContext) ast.Qualifiers {
	var q ast.Qualifiers
	first := true
	for {
		tok := p.peek()
		k := tok.Kind
		if !k.IsStorageQualifier() && k != token.KwInvariant && k != token.KwInout {
			return q
		}
		p.advance()
		if first {
			q.Span = tok.Span
			first = false
		} else {
			q.Span = q.Span.Cover(tok.Span)
		}

		switch {
		case k == token.KwInvariant:
			if q.Invariant {
				p.warn(diag.SynRepeatedQualifier, tok.Span, "repeated 'invariant' qualifier is ignored")
			}
			q.Invariant = true

		case ctx == qualParam && (k == token.KwIn || k == token.KwOut || k == token.KwInout):
			pq := ast.ParamFromToken(k)
			switch {
			case q.Param == pq:
				p.warn(diag.SynRepeatedQualifier, tok.Span, "repeated "+k.Display()+" qualifier is ignored")
			case q.Param != ast.ParamNone:
				p.errorAt(diag.SynBadDeclaration, tok.Span, "conflicting parameter qualifiers")
			default:
				q.Param = pq
			}

		case k == token.KwInout:
			p.errorAt(diag.SynBadDeclaration, tok.Span, "'inout' is only allowed on function parameters")

		case ctx == qualParam && k != token.KwConst:
			p.errorAt(diag.SynBadDeclaration, tok.Span, k.Display()+" is not allowed on function parameters")

		default:
			sq := ast.StorageFromToken(k)
			switch {
			case q.Storage == sq:
				p.warn(diag.SynRepeatedQualifier, tok.Span, "repeated "+k.Display()+" qualifier is ignored")
			case q.Storage != ast.StorageNone:
				p.errorAt(diag.SynBadDeclaration, tok.Span, "conflicting storage qualifiers "+
					"'"+q.Storage.String()+"' and "+k.Display())
			default:
				q.Storage = sq
			}
		}
	}
}

// parseTypeSpecifier: precision? (builtin | struct-specifier | IDENT)
func (p *Parser) parseTypeSpecifier() (ast.TypeID, bool) {
	start := p.peek().Span
	prec := ast.PrecisionNone
	if p.peek().Kind.IsPrecisionQualifier() {
		prec = ast.PrecisionFromToken(p.advance().Kind)
	}
	return p.parseTypeSpecifierNoPrec(start, prec)
}

func (p *Parser) parseTypeSpecifierNoPrec(start source.Span, prec ast.PrecisionQual) (ast.TypeID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind.IsBuiltinType():
		p.advance()
		return p.b.Types.NewBuiltin(p.spanFrom(start), tok.Kind, prec), true
	case tok.Kind == token.KwStruct:
		return p.parseStructSpecifier(start, prec)
	case tok.Kind == token.Ident:
		p.advance()
		return p.b.Types.NewNamed(p.spanFrom(start), tok.Text, prec), true
	}
	p.expected(diag.SynExpectType, "type", typeStart...)
	return ast.NoTypeID, false
}

// parseStructSpecifier: 'struct' IDENT? '{' member+ '}'
// member: type-specifier field (',' field)* ';'
func (p *Parser) parseStructSpecifier(start source.Span, prec ast.PrecisionQual) (ast.TypeID, bool) {
	p.advance() // struct
	var spec ast.StructSpec
	if p.at(token.Ident) {
		name := p.advance()
		spec.Name = name.Text
		spec.NameSpan = name.Span
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoTypeID, false
	}

	for {
		memberStart := p.peek().Span
		ty, ok := p.parseTypeSpecifier()
		if !ok {
			return ast.NoTypeID, false
		}
		member := ast.StructMember{Type: ty}
		for {
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
			if !ok {
				return ast.NoTypeID, false
			}
			arr, ok := p.parseArraySpec()
			if !ok {
				return ast.NoTypeID, false
			}
			member.Fields = append(member.Fields, p.b.Types.NewField(ast.Field{
				Name:  name.Text,
				Span:  p.spanFrom(name.Span),
				Array: arr,
			}))
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
			return ast.NoTypeID, false
		}
		member.Span = p.spanFrom(memberStart)
		spec.Members = append(spec.Members, member)

		if p.at(token.RBrace) {
			break
		}
		if !canStartType(p.peek().Kind) {
			p.expectClose(token.RBrace, open)
			p.expected(diag.SynExpectType, "type", typeStart...)
			return ast.NoTypeID, false
		}
	}
	p.advance() // }
	return p.b.Types.NewStruct(p.spanFrom(start), spec, prec), true
}

// parseArraySpec: ('[' conditional? ']')?
func (p *Parser) parseArraySpec() (ast.ArraySpec, bool) {
	if !p.at(token.LBracket) {
		return ast.ArraySpec{}, true
	}
	open := p.advance()
	arr := ast.ArraySpec{Present: true}
	if !p.at(token.RBracket) {
		size, ok := p.parseConditional()
		if !ok {
			return ast.ArraySpec{}, false
		}
		arr.Size = size
	}
	if _, ok := p.expectClose(token.RBracket, open); !ok {
		return ast.ArraySpec{}, false
	}
	arr.Span = p.spanFrom(open.Span)
	return arr, true
}
