package lexer

import (
	"testing"

	"github.com/paiml/ruchy-sub004/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `let x = 5
x + 10`

	tests := []struct {
		expectedLiteral string
		expectedKind    token.Kind
	}{
		{"let", token.LET},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"5", token.INT},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"10", token.INT},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedKind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `fun fn class actor match while for loop if else
		try catch finally throw pub static async await Some None Ok Err`

	tests := []struct {
		expectedLiteral string
		expectedKind    token.Kind
	}{
		{"fun", token.FUN}, {"fn", token.FN}, {"class", token.CLASS}, {"actor", token.ACTOR},
		{"match", token.MATCH}, {"while", token.WHILE}, {"for", token.FOR}, {"loop", token.LOOP},
		{"if", token.IF}, {"else", token.ELSE},
		{"try", token.TRY}, {"catch", token.CATCH}, {"finally", token.FINALLY}, {"throw", token.THROW},
		{"pub", token.PUB}, {"static", token.STATIC}, {"async", token.ASYNC}, {"await", token.AWAIT},
		{"Some", token.SOME}, {"None", token.NONE}, {"Ok", token.OK}, {"Err", token.ERR},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % ** == != <= >= && || ?? ?. => -> :: |> ++ -- += -= *= /=`

	tests := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.POWER,
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.AMP_AMP, token.PIPE_PIPE,
		token.QUESTION_QUESTION, token.QUESTION_DOT, token.FAT_ARROW, token.ARROW,
		token.COLON_COLON, token.PIPE_GT, token.PLUS_PLUS, token.MINUS_MINUS,
		token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q (literal=%q)", i, want, tok.Kind, tok.Literal)
		}
	}
}

func TestQualifiedPathColonColon(t *testing.T) {
	l := New(`Color::Red`)
	want := []token.Kind{token.IDENT, token.COLON_COLON, token.IDENT, token.EOF}
	for i, k := range want {
		if tok := l.NextToken(); tok.Kind != k {
			t.Fatalf("tests[%d]: expected %q, got %q", i, k, tok.Kind)
		}
	}
}

func TestTokenizeAccumulatesAllTokens(t *testing.T) {
	toks, errs := Tokenize("1 + 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// 1, +, 2, EOF
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %v", len(toks), toks)
	}
}

func TestFStringRawTemplateCaptured(t *testing.T) {
	toks, errs := Tokenize(`f"hi {name}!"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	found := false
	for _, tok := range toks {
		if tok.Kind == token.FSTRING {
			found = true
			if tok.Literal == "" {
				t.Fatalf("expected a non-empty raw template literal")
			}
		}
	}
	if !found {
		t.Fatalf("expected an FSTRING token, got %v", toks)
	}
}
