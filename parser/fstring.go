package parser

import (
	"strings"

	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/lexer"
)

// parseFString scans the raw FSTRING template character by character,
// per spec §4.2: `{{`/`}}` escape to literal braces, `{expr}` extracts
// the balanced-brace substring and parses it as a full expression,
// `{expr:fmt}` splits at the first top-level `:`, and an empty `{}`
// becomes the literal text "{}" (a reserved positional placeholder).
// Unmatched `}` or an unclosed `{` is a parse error.
func (p *Parser) parseFString() ast.Expr {
	t := p.advance()
	parts, exprErrs, err := ParseFStringParts(t.Literal)
	if err != nil {
		p.errorf("%s", err.Error())
	}
	p.errs = append(p.errs, exprErrs...)
	return &ast.StringInterpolation{Base: newBase(ast.KStringInterpolation, t.Span), Parts: parts}
}

// ParseFStringParts is exported so the lexer/parser's f-string
// semantics can be exercised directly by spec §8's property tests
// without constructing a full token stream. It returns the parsed
// parts, any errors from parsing embedded expressions, and a non-nil
// structural error if the template itself is malformed (unmatched
// brace).
func ParseFStringParts(template string) ([]ast.StringPart, []error, error) {
	var parts []ast.StringPart
	var exprErrs []error
	var textBuf strings.Builder
	runes := []rune(template)
	i := 0
	flushText := func() {
		if textBuf.Len() > 0 {
			parts = append(parts, ast.StringPart{Kind: ast.PartText, Text: textBuf.String()})
			textBuf.Reset()
		}
	}
	for i < len(runes) {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				textBuf.WriteRune('{')
				i += 2
				continue
			}
			// Find the matching balanced `}` for this `{`.
			depth := 1
			j := i + 1
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto found
					}
				}
				j++
			}
		found:
			if depth != 0 {
				return parts, exprErrs, &Error{Message: "unclosed '{' in f-string"}
			}
			body := string(runes[i+1 : j])
			i = j + 1
			if body == "" {
				textBuf.WriteString("{}")
				continue
			}
			flushText()
			exprSrc, formatSpec, hasFormat := splitFormatSpec(body)
			toks, _ := lexer.Tokenize(exprSrc)
			sub := New(toks, WithSource(exprSrc))
			expr := sub.parseTopLevel()
			exprErrs = append(exprErrs, sub.errs...)
			if hasFormat {
				parts = append(parts, ast.StringPart{Kind: ast.PartExprWithFormat, Expr: expr, FormatSpec: formatSpec})
			} else {
				parts = append(parts, ast.StringPart{Kind: ast.PartExpr, Expr: expr})
			}
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				textBuf.WriteRune('}')
				i += 2
				continue
			}
			return parts, exprErrs, &Error{Message: "unmatched '}' in f-string"}
		default:
			textBuf.WriteRune(runes[i])
			i++
		}
	}
	flushText()
	return parts, exprErrs, nil
}

// splitFormatSpec splits `expr:fmt` at the first top-level `:` (not
// inside nested braces/brackets/parens), matching Rust's own format
// string convention that `:` only introduces a spec at depth 0.
func splitFormatSpec(body string) (expr, spec string, has bool) {
	depth := 0
	runes := []rune(body)
	for idx, r := range runes {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return string(runes[:idx]), string(runes[idx+1:]), true
			}
		}
	}
	return body, "", false
}
