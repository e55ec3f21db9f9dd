// Package token defines the lexical token taxonomy shared by the lexer,
// parser, and diagnostics renderers.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds, grouped the way the scanner recognizes them.
const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	// Identifiers and literals.
	IDENT
	INT
	FLOAT
	STRING
	FSTRING // f"...{expr}..." raw template, re-scanned by the parser
	CHAR

	literalEnd

	// Keywords.
	keywordBeg
	TRUE
	FALSE
	NIL
	LET
	VAR
	CONST
	MUT
	IF
	ELSE
	MATCH
	WHILE
	FOR
	LOOP
	IN
	BREAK
	CONTINUE
	RETURN
	FUN
	FN
	LAMBDA_FAT // unused placeholder kept for symmetry with =>
	STRUCT
	CLASS
	TRAIT
	IMPL
	ENUM
	ACTOR
	EFFECT
	HANDLE
	PUB
	STATIC
	OVERRIDE
	ASYNC
	AWAIT
	SPAWN
	SEND
	RECEIVE
	TRY
	CATCH
	FINALLY
	THROW
	IMPORT
	USE
	EXPORT
	MODULE
	SOME
	NONE
	OK
	ERR
	AS
	AND
	OR
	SELF
	keywordEnd

	// Operators and punctuation.
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER // **
	ASSIGN
	EQ
	NOT_EQ
	LT
	LT_EQ
	GT
	GT_EQ
	BANG
	AMP
	AMP_AMP
	PIPE
	PIPE_PIPE
	CARET
	SHL
	SHR
	DOT
	DOT_DOT     // ..
	DOT_DOT_EQ  // ..=
	DOT_DOT_DOT // ...
	QUESTION
	QUESTION_QUESTION // ??
	QUESTION_DOT      // ?.
	FAT_ARROW         // =>
	ARROW             // ->
	COLON_COLON       // ::
	PIPE_GT           // |>
	COMMA
	COLON
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACK
	RBRACK
	AT // @ (pattern at-binding)
	UNDERSCORE
	PLUS_PLUS
	MINUS_MINUS
	PLUS_EQ
	MINUS_EQ
	STAR_EQ
	SLASH_EQ
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", FSTRING: "FSTRING", CHAR: "CHAR",
	TRUE: "true", FALSE: "false", NIL: "nil", LET: "let", VAR: "var", CONST: "const", MUT: "mut",
	IF: "if", ELSE: "else", MATCH: "match", WHILE: "while", FOR: "for", LOOP: "loop", IN: "in",
	BREAK: "break", CONTINUE: "continue", RETURN: "return", FUN: "fun", FN: "fn",
	STRUCT: "struct", CLASS: "class", TRAIT: "trait", IMPL: "impl", ENUM: "enum",
	ACTOR: "actor", EFFECT: "effect", HANDLE: "handle", PUB: "pub", STATIC: "static",
	OVERRIDE: "override", ASYNC: "async", AWAIT: "await", SPAWN: "spawn", SEND: "send",
	RECEIVE: "receive", TRY: "try", CATCH: "catch", FINALLY: "finally", THROW: "throw",
	IMPORT: "import", USE: "use", EXPORT: "export", MODULE: "module",
	SOME: "Some", NONE: "None", OK: "Ok", ERR: "Err", AS: "as", AND: "and", OR: "or", SELF: "self",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	ASSIGN: "=", EQ: "==", NOT_EQ: "!=", LT: "<", LT_EQ: "<=", GT: ">", GT_EQ: ">=",
	BANG: "!", AMP: "&", AMP_AMP: "&&", PIPE: "|", PIPE_PIPE: "||", CARET: "^", SHL: "<<", SHR: ">>",
	DOT: ".", DOT_DOT: "..", DOT_DOT_EQ: "..=", DOT_DOT_DOT: "...",
	QUESTION: "?", QUESTION_QUESTION: "??", QUESTION_DOT: "?.",
	FAT_ARROW: "=>", ARROW: "->", COLON_COLON: "::", PIPE_GT: "|>",
	COMMA: ",", COLON: ":", SEMICOLON: ";",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACK: "[", RBRACK: "]",
	AT: "@", UNDERSCORE: "_", PLUS_PLUS: "++", MINUS_MINUS: "--",
	PLUS_EQ: "+=", MINUS_EQ: "-=", STAR_EQ: "*=", SLASH_EQ: "/=",
}

// String renders the kind's canonical surface spelling, used in error
// messages and diagnostics.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is one of the reserved words.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsLiteral reports whether the kind is one of the literal token kinds.
func (k Kind) IsLiteral() bool { return k > IDENT-1 && k < literalEnd }

// keywords maps the reserved-word spelling to its Kind. Lookup order in
// the scanner: try this map first, fall back to IDENT.
var keywords = map[string]Kind{
	"true": TRUE, "false": FALSE, "nil": NIL,
	"let": LET, "var": VAR, "const": CONST, "mut": MUT,
	"if": IF, "else": ELSE, "match": MATCH,
	"while": WHILE, "for": FOR, "loop": LOOP, "in": IN,
	"break": BREAK, "continue": CONTINUE, "return": RETURN,
	"fun": FUN, "fn": FN,
	"struct": STRUCT, "class": CLASS, "trait": TRAIT, "impl": IMPL, "enum": ENUM,
	"actor": ACTOR, "effect": EFFECT, "handle": HANDLE,
	"pub": PUB, "static": STATIC, "override": OVERRIDE,
	"async": ASYNC, "await": AWAIT, "spawn": SPAWN, "send": SEND, "receive": RECEIVE,
	"try": TRY, "catch": CATCH, "finally": FINALLY, "throw": THROW,
	"import": IMPORT, "use": USE, "export": EXPORT, "module": MODULE,
	"Some": SOME, "None": NONE, "Ok": OK, "Err": ERR,
	"as": AS, "and": AND, "or": OR, "self": SELF,
}

// LookupIdent returns the Kind for a reserved word, or IDENT otherwise.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// Keywords lists every reserved word's surface spelling, for tooling
// that wants to offer them as completion candidates (a REPL's tab
// completion, a linter's typo suggestions) without depending on the
// lexer's internal table directly.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// Position is a single point in source text. Column counts Unicode code
// points (runes), not bytes or display cells, matching the teacher
// lexer's documented rune-counting convention.
type Position struct {
	Line   int
	Column int
	Offset int // byte offset into the source, for slicing snippets
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span covers the half-open source range [Start, End) of a token or AST
// node.
type Span struct {
	Start Position
	End   Position
}

// Token is a single lexical unit: its kind, literal text, and span.
type Token struct {
	Kind    Kind
	Literal string
	Span    Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Literal, t.Span.Start)
}
