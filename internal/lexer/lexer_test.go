package lexer

import (
	"testing"

	"github.com/cdelzotti/sigh/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `class Foo sonOf Bar {
	x: Int;
	fun Foo(v: Int) {
		x = v;
	}
}
var y: Unborn<Int> = born(Foo, y);
print("" + 1.5 == 2 && !false || ciblingsOf);
`

	tests := []struct {
		expectedLiteral string
		expectedKind    token.Kind
	}{
		{"class", token.CLASS},
		{"Foo", token.IDENT},
		{"sonOf", token.SONOF},
		{"Bar", token.IDENT},
		{"{", token.LBRACE},
		{"x", token.IDENT},
		{":", token.COLON},
		{"Int", token.IDENT},
		{";", token.SEMICOLON},
		{"fun", token.FUN},
		{"Foo", token.IDENT},
		{"(", token.LPAREN},
		{"v", token.IDENT},
		{":", token.COLON},
		{"Int", token.IDENT},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"v", token.IDENT},
		{";", token.SEMICOLON},
		{"}", token.RBRACE},
		{"}", token.RBRACE},
		{"var", token.VAR},
		{"y", token.IDENT},
		{":", token.COLON},
		{"Unborn", token.UNBORN},
		{"<", token.LT},
		{"Int", token.IDENT},
		{">", token.GT},
		{"=", token.ASSIGN},
		{"born", token.BORN},
		{"(", token.LPAREN},
		{"Foo", token.IDENT},
		{",", token.COMMA},
		{"y", token.IDENT},
		{")", token.RPAREN},
		{";", token.SEMICOLON},
		{"print", token.IDENT},
		{"(", token.LPAREN},
		{"\"\"", token.STRING},
		{"+", token.PLUS},
		{"1.5", token.FLOAT},
		{"==", token.EQ},
		{"2", token.INT},
		{"&&", token.AND},
		{"!", token.NOT},
		{"false", token.IDENT},
		{"||", token.OR},
		{"ciblingsOf", token.CIBLINGS_OF},
		{")", token.RPAREN},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedKind, tok.Kind, tok.Literal)
		}
		if tok.Kind == token.STRING {
			continue // string literal Literal carries the decoded value, not the quoted source
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestSiblingsOfSynonym(t *testing.T) {
	l := New("siblingsOf")
	tok := l.NextToken()
	if tok.Kind != token.CIBLINGS_OF {
		t.Fatalf("siblingsOf should lex as CIBLINGS_OF, got %s", tok.Kind)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("var\nx")
	varTok := l.NextToken()
	if varTok.Pos.Line != 1 {
		t.Fatalf("expected var on line 1, got %d", varTok.Pos.Line)
	}
	xTok := l.NextToken()
	if xTok.Pos.Line != 2 {
		t.Fatalf("expected x on line 2, got %d", xTok.Pos.Line)
	}
}

func TestBOMStripped(t *testing.T) {
	l := New("\xEF\xBB\xBFvar")
	tok := l.NextToken()
	if tok.Kind != token.VAR {
		t.Fatalf("expected VAR after BOM strip, got %s", tok.Kind)
	}
}

func TestIllegalCharacterReported(t *testing.T) {
	l := New("var x = #;")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected at least one lexical error for '#'")
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	l := New(`"abc`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexical error for an unterminated string literal")
	}
}
