package token

import "testing"

func TestLookupIdentRecognizesKeywords(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"let", LET},
		{"fun", FUN},
		{"class", CLASS},
		{"actor", ACTOR},
		{"Some", SOME},
		{"notAKeyword", IDENT},
		{"_", IDENT}, // UNDERSCORE is its own token kind produced by the lexer directly, not via keyword lookup
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %q, want %q", tt.ident, got, tt.want)
		}
	}
}

func TestKindStringRendersSurfaceSpelling(t *testing.T) {
	if PLUS.String() != "+" {
		t.Errorf("expected PLUS to render as %q, got %q", "+", PLUS.String())
	}
	if FAT_ARROW.String() != "=>" {
		t.Errorf("expected FAT_ARROW to render as %q, got %q", "=>", FAT_ARROW.String())
	}
}

func TestIsKeywordAndIsLiteral(t *testing.T) {
	if !CLASS.IsKeyword() {
		t.Errorf("expected CLASS.IsKeyword() to be true")
	}
	if PLUS.IsKeyword() {
		t.Errorf("expected PLUS.IsKeyword() to be false")
	}
	if !INT.IsLiteral() {
		t.Errorf("expected INT.IsLiteral() to be true")
	}
	if LET.IsLiteral() {
		t.Errorf("expected LET.IsLiteral() to be false")
	}
}

func TestPositionString(t *testing.T) {
	pos := Position{Line: 3, Column: 5}
	if pos.String() == "" {
		t.Errorf("expected a non-empty position rendering")
	}
}
