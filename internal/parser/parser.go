// Package parser implements a hand-written recursive-descent/Pratt parser
// that turns a token stream from internal/lexer into an internal/ast tree.
//
// Grounded on go-dws's internal/parser core Pratt loop (precedence table,
// prefixParseFn/infixParseFn maps, curToken/peekToken two-token lookahead,
// parseExpression's precedence-climbing loop): go-dws's own parser.go
// carries a heavier TokenCursor/backtracking/block-context apparatus built
// out for DWScript's much larger grammar (sets, records, interfaces,
// contracts, speculative parsing for ambiguous constructs); Sigh's grammar
// has no construct that needs backtracking, so this
// parser keeps the simple two-token-lookahead core and drops the
// speculative-state machinery go-dws needed only for its larger surface.
package parser

import (
	"fmt"

	"github.com/cdelzotti/sigh/internal/ast"
	"github.com/cdelzotti/sigh/internal/lexer"
	"github.com/cdelzotti/sigh/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >= ciblingsOf/siblingsOf
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x, !x
	CALL        // f(...), arr[i], s.field
)

var precedences = map[token.Kind]int{
	token.OR:          OR,
	token.AND:         AND,
	token.EQ:          EQUALS,
	token.NE:          EQUALS,
	token.LT:          LESSGREATER,
	token.GT:          LESSGREATER,
	token.LE:          LESSGREATER,
	token.GE:          LESSGREATER,
	token.CIBLINGS_OF: LESSGREATER,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.STAR:        PRODUCT,
	token.SLASH:       PRODUCT,
	token.PERCENT:     PRODUCT,
	token.LPAREN:      CALL,
	token.LBRACKET:    CALL,
	token.DOT:         CALL,
}

// Error is a single parse error with the position it occurred at.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return fmt.Sprintf("%s at %s", e.Message, e.Pos) }

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser turns a token stream into an *ast.RootNode.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*Error

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.IDENT:    p.parseIdentifierOrCall,
		token.INT:      p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.LPAREN:   p.parseGroupedExpr,
		token.LBRACKET: p.parseArrayLiteral,
		token.MINUS:    p.parseUnaryExpr,
		token.NOT:      p.parseUnaryExpr,
		token.DOLLAR:   p.parseConstructorExpr,
		token.DADDY:    p.parseDaddyCall,
	}
	p.infixFns = map[token.Kind]infixParseFn{
		token.PLUS:        p.parseBinaryExpr,
		token.MINUS:       p.parseBinaryExpr,
		token.STAR:        p.parseBinaryExpr,
		token.SLASH:       p.parseBinaryExpr,
		token.PERCENT:     p.parseBinaryExpr,
		token.LT:          p.parseBinaryExpr,
		token.GT:          p.parseBinaryExpr,
		token.LE:          p.parseBinaryExpr,
		token.GE:          p.parseBinaryExpr,
		token.EQ:          p.parseBinaryExpr,
		token.NE:          p.parseBinaryExpr,
		token.AND:         p.parseBinaryExpr,
		token.OR:          p.parseBinaryExpr,
		token.CIBLINGS_OF: p.parseBinaryExpr,
		token.LPAREN:      p.parseCallExpr,
		token.LBRACKET:    p.parseArrayAccess,
		token.DOT:         p.parseFieldAccess,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error collected so far.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) curPrecedence() int  { return precedenceOf(p.curToken.Kind) }
func (p *Parser) peekPrecedence() int { return precedenceOf(p.peekToken.Kind) }

func precedenceOf(k token.Kind) int {
	if prec, ok := precedences[k]; ok {
		return prec
	}
	return LOWEST
}

// expectPeek advances past peekToken if it matches k, otherwise records an
// error and leaves the cursor where it was.
func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Pos, "expected %s, got %s", k, p.peekToken.Kind)
	return false
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// ParseProgram parses an entire source file into a RootNode.
func ParseProgram(l *lexer.Lexer) (*ast.RootNode, []*Error) {
	p := New(l)
	root := &ast.RootNode{StartPos: p.curToken.Pos}

	for !p.curIs(token.EOF) {
		switch p.curToken.Kind {
		case token.STRUCT:
			if d := p.parseStructDecl(); d != nil {
				root.Declarations = append(root.Declarations, d)
			}
		case token.CLASS:
			if d := p.parseClassDecl(); d != nil {
				root.Declarations = append(root.Declarations, d)
			}
		case token.FUN:
			if d := p.parseFunDecl(); d != nil {
				root.Declarations = append(root.Declarations, d)
			}
		default:
			if s := p.parseStatement(); s != nil {
				root.Statements = append(root.Statements, s)
			}
		}
		p.nextToken()
	}

	return root, p.errors
}
