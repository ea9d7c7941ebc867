package parser

import (
	"strconv"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/token"
)

// parseExpression is the Pratt-parser core: a prefix parse followed by a
// precedence-climbing loop over infix operators. PRE: curToken is the expression's first token. POST: curToken is
// the expression's last token.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.curToken.Kind]
	if !ok {
		p.errorf(p.curToken.Pos, "unexpected token %s in expression", p.curToken.Kind)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Kind]
		if !ok {
			break
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifierOrCall() ast.Expr {
	return &ast.Reference{StartPos: p.curToken.Pos, Name: p.curToken.Literal}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	pos := p.curToken.Pos
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf(pos, "invalid integer literal %q", p.curToken.Literal)
		return nil
	}
	return &ast.IntLiteral{StartPos: pos, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	pos := p.curToken.Pos
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(pos, "invalid float literal %q", p.curToken.Literal)
		return nil
	}
	return &ast.FloatLiteral{StartPos: pos, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return &ast.StringLiteral{StartPos: p.curToken.Pos, Value: p.curToken.Literal}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// parseArrayLiteral parses `[e1, e2, ...]`, including the empty `[]`
//. PRE: curToken is LBRACKET.
func (p *Parser) parseArrayLiteral() ast.Expr {
	n := &ast.ArrayLiteral{StartPos: p.curToken.Pos}
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return n
	}
	p.nextToken()
	n.Elements = append(n.Elements, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		n.Elements = append(n.Elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACKET) {
		return n
	}
	return n
}

// parseUnaryExpr parses `-expr` or `!expr`.
func (p *Parser) parseUnaryExpr() ast.Expr {
	pos := p.curToken.Pos
	op := p.curToken.Literal
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{StartPos: pos, Op: op, Operand: operand}
}

// parseBinaryExpr parses the right-hand side of an infix operator already
// consumed into curToken, with left as the already-parsed left operand.
func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	op := normalizeOp(p.curToken)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpr{StartPos: pos, Op: op, Left: left, Right: right}
}

// normalizeOp renders an operator token's canonical source spelling,
// normalizing the siblingsOf spelling to ciblingsOf.
func normalizeOp(tok token.Token) string {
	if tok.Kind == token.CIBLINGS_OF {
		return "ciblingsOf"
	}
	return tok.Literal
}

// parseCallExpr parses `callee(args...)`, with callee already parsed and
// curToken on LPAREN.
func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	n := &ast.FunCall{StartPos: callee.Pos(), Callee: callee}
	n.Arguments = p.parseCallArgs()
	return n
}

// parseCallArgs parses a parenthesized, comma-separated argument list.
// PRE: curToken is LPAREN. POST: curToken is RPAREN.
func (p *Parser) parseCallArgs() []ast.Expr {
	var args []ast.Expr
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return args
	}
	return args
}

// parseArrayAccess parses `arr[index]`, with arr already parsed and
// curToken on LBRACKET.
func (p *Parser) parseArrayAccess(arr ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayAccess{StartPos: pos, Array: arr, Index: index}
}

// parseFieldAccess parses `stem.field` into a FieldAccess. A following
// `(args...)` is not consumed here: the LPAREN infix handler wraps the
// FieldAccess in a FunCall, since a method call is just a FunCall whose
// Callee is a FieldAccess.
func (p *Parser) parseFieldAccess(stem ast.Expr) ast.Expr {
	pos := p.curToken.Pos
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.FieldAccess{StartPos: pos, Stem: stem, Field: p.curToken.Literal}
}

// parseConstructorExpr parses `$Name(args...)`. PRE: curToken is DOLLAR.
func (p *Parser) parseConstructorExpr() ast.Expr {
	pos := p.curToken.Pos
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	n := &ast.ConstructorExpr{StartPos: pos, Name: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		return n
	}
	n.Arguments = p.parseCallArgs()
	return n
}

// parseDaddyCall parses `Daddy(args...)`.
// PRE: curToken is DADDY.
func (p *Parser) parseDaddyCall() ast.Expr {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	n := &ast.DaddyCall{StartPos: pos}
	n.Arguments = p.parseCallArgs()
	return n
}
