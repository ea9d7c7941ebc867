package parser

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/token"
)

// parseTypeExpr parses a type annotation: a bare name, an array suffix
// `Elem[]`, or `Unborn<Inner>`. PRE: curToken is the type
// annotation's first token. POST: curToken is the annotation's last token.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	var t ast.TypeExpr

	if p.curIs(token.UNBORN) {
		pos := p.curToken.Pos
		if !p.expectPeek(token.LT) {
			return nil
		}
		p.nextToken()
		inner := p.parseTypeExpr()
		if inner == nil {
			return nil
		}
		if !p.expectPeek(token.GT) {
			return nil
		}
		t = &ast.UnbornTypeExpr{StartPos: pos, Inner: inner}
	} else {
		if !p.curIs(token.IDENT) {
			p.errorf(p.curToken.Pos, "expected a type name, got %s", p.curToken.Kind)
			return nil
		}
		t = &ast.NamedTypeExpr{StartPos: p.curToken.Pos, Name: p.curToken.Literal}
	}

	for p.peekIs(token.LBRACKET) {
		p.nextToken()
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		t = &ast.ArrayTypeExpr{StartPos: t.Pos(), Elem: t}
	}
	return t
}

// parseAnnotation parses `: Type` after a name, returning nil (Auto) if
// there is no colon.
func (p *Parser) parseAnnotation() ast.TypeExpr {
	if !p.peekIs(token.COLON) {
		return nil
	}
	p.nextToken() // consume ':'
	p.nextToken() // move to the type
	return p.parseTypeExpr()
}

// parseVarDecl parses `var name[: Type][= init];`. PRE: curToken is VAR.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.curToken.Pos
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	d := &ast.VarDecl{StartPos: pos, Name: p.curToken.Literal}
	d.Annotation = p.parseAnnotation()

	if p.peekIs(token.ASSIGN) {
		p.nextToken() // consume '='
		p.nextToken() // move to initializer
		d.Initializer = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return d
}

// parseParams parses a parenthesized, comma-separated parameter list.
// PRE: curToken is LPAREN. POST: curToken is RPAREN.
func (p *Parser) parseParams() []*ast.ParameterDecl {
	var params []*ast.ParameterDecl
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	for {
		if !p.curIs(token.IDENT) {
			p.errorf(p.curToken.Pos, "expected a parameter name, got %s", p.curToken.Kind)
			return params
		}
		pd := &ast.ParameterDecl{StartPos: p.curToken.Pos, Name: p.curToken.Literal}
		if !p.expectPeek(token.COLON) {
			return params
		}
		p.nextToken()
		pd.Annotation = p.parseTypeExpr()
		params = append(params, pd)

		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken() // consume ','
		p.nextToken() // move to next param name
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

// parseFunDecl parses `fun name(params): RetType { body }`. PRE: curToken
// is FUN.
func (p *Parser) parseFunDecl() *ast.FunDecl {
	pos := p.curToken.Pos
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	d := &ast.FunDecl{StartPos: pos, Name: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	d.Params = p.parseParams()

	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		d.ReturnType = p.parseTypeExpr()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	d.Body = p.parseBlock()
	return d
}

// parseStructDecl parses `struct Name { field: Type; ... }`. PRE: curToken
// is STRUCT.
func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.curToken.Pos
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	d := &ast.StructDecl{StartPos: pos, Name: p.curToken.Literal}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			p.errorf(p.curToken.Pos, "expected a field name, got %s", p.curToken.Kind)
			return d
		}
		fd := &ast.FieldDecl{StartPos: p.curToken.Pos, Name: p.curToken.Literal}
		if !p.expectPeek(token.COLON) {
			return d
		}
		p.nextToken()
		fd.Annotation = p.parseTypeExpr()
		d.Fields = append(d.Fields, fd)

		if !p.expectPeek(token.SEMICOLON) {
			return d
		}
		p.nextToken()
	}
	return d
}

// parseClassDecl parses `class Name [sonOf Parent] { members... }`. Members
// are fields (`name: Type;`) and methods