package parser

import (
	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/token"
)

// parseBlock parses `{ stmt; stmt; ... }`. PRE: curToken is LBRACE. POST:
// curToken is RBRACE.
func (p *Parser) parseBlock() *ast.Block {
	b := &ast.Block{StartPos: p.curToken.Pos}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if s := p.parseStatement(); s != nil {
			b.Statements = append(b.Statements, s)
		}
		p.nextToken()
	}
	return b
}

// parseStatement dispatches on curToken's kind to the right statement
// parser. PRE: curToken is the statement's first token. POST: curToken is
// the statement's last token (its trailing semicolon, or a block's closing
// brace for If/While).
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Kind {
	case token.VAR:
		d := p.parseVarDecl()
		if d == nil {
			return nil
		}
		return &ast.VarDeclStmt{Decl: d}
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.BORN:
		return p.parseBornStmt()
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseIf() *ast.If {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	then := p.parseBlock()

	n := &ast.If{StartPos: pos, Condition: cond, Then: then}
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return n
		}
		n.Else = p.parseBlock()
	}
	return n
}

func (p *Parser) parseWhile() *ast.While {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	return &ast.While{StartPos: pos, Condition: cond, Body: body}
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.curToken.Pos
	n := &ast.Return{StartPos: pos}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
		return n
	}
	p.nextToken()
	n.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(token.SEMICOLON) {
		return n
	}
	return n
}

// parseBornStmt parses `born(f)` or `born(f, v)`.
func (p *Parser) parseBornStmt() *ast.BornStmt {
	pos := p.curToken.Pos
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	n := &ast.BornStmt{StartPos: pos, Function: &ast.Reference{StartPos: p.curToken.Pos, Name: p.curToken.Literal}}

	if p.peekIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return n
		}
		n.Var = &ast.Reference{StartPos: p.curToken.Pos, Name: p.curToken.Literal}
	}
	if !p.expectPeek(token.RPAREN) {
		return n
	}
	if !p.expectPeek(token.SEMICOLON) {
		return n
	}
	return n
}

// parseAssignOrExprStmt parses either `target = value;` or a bare expression statement (a function/method call
// evaluated for effect).
func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	pos := p.curToken.Pos
	expr := p.parseExpression(LOWEST)

	if p.peekIs(token.ASSIGN) {
		p.nextToken() // consume '='
		p.nextToken() // move to value
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		return &ast.Assign{StartPos: pos, Target: expr, Value: value}
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ExprStmt{StartPos: pos, Expression: expr}
}
