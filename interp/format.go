package interp

import (
	"strconv"
	"strings"
)

// applyFormatSpec renders v according to a Python/Rust-style mini
// format spec (`[<fill><align>][width][.precision][type]`), the same
// subset spec §3's f-string grammar exposes. An empty spec just calls
// v.String().
func applyFormatSpec(v Value, spec string) (string, error) {
	if spec == "" {
		return v.String(), nil
	}

	align := byte(0)
	fill := byte(' ')
	rest := spec
	if len(rest) >= 2 && isAlignChar(rest[1]) {
		fill, align = rest[0], rest[1]
		rest = rest[2:]
	} else if len(rest) >= 1 && isAlignChar(rest[0]) {
		align = rest[0]
		rest = rest[1:]
	}

	width := 0
	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		width = width*10 + int(rest[0]-'0')
		rest = rest[1:]
	}

	precision := -1
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
		p := 0
		for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			p = p*10 + int(rest[0]-'0')
			rest = rest[1:]
		}
		precision = p
	}

	var typ byte
	if len(rest) > 0 {
		typ = rest[0]
		rest = rest[1:]
	}
	if rest != "" {
		return "", valueError("unsupported format spec %q", spec)
	}

	text, err := formatByType(v, typ, precision)
	if err != nil {
		return "", err
	}
	return padTo(text, width, fill, align), nil
}

func isAlignChar(c byte) bool { return c == '<' || c == '>' || c == '^' }

func formatByType(v Value, typ byte, precision int) (string, error) {
	switch typ {
	case 0:
		if f, ok := v.(Float); ok && precision >= 0 {
			return strconv.FormatFloat(float64(f), 'f', precision, 64), nil
		}
		return v.String(), nil
	case 'f':
		n, err := toFloat(v)
		if err != nil {
			return "", err
		}
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(n, 'f', precision, 64), nil
	case 'd':
		n, ok := v.(Integer)
		if !ok {
			return "", typeError("%%d requires an Integer, got %s", v.Type())
		}
		return strconv.FormatInt(int64(n), 10), nil
	case 'x':
		n, ok := v.(Integer)
		if !ok {
			return "", typeError("%%x requires an Integer, got %s", v.Type())
		}
		return strconv.FormatInt(int64(n), 16), nil
	case 'b':
		n, ok := v.(Integer)
		if !ok {
			return "", typeError("%%b requires an Integer, got %s", v.Type())
		}
		return strconv.FormatInt(int64(n), 2), nil
	case 'e':
		n, err := toFloat(v)
		if err != nil {
			return "", err
		}
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(n, 'e', precision, 64), nil
	case 's':
		return v.String(), nil
	default:
		return "", valueError("unknown format type %q", string(typ))
	}
}

func toFloat(v Value) (float64, error) {
	switch n := v.(type) {
	case Float:
		return float64(n), nil
	case Integer:
		return float64(n), nil
	default:
		return 0, typeError("expected a numeric value, got %s", v.Type())
	}
}

func padTo(s string, width int, fill byte, align byte) string {
	if len(s) >= width {
		return s
	}
	pad := strings.Repeat(string(fill), width-len(s))
	switch align {
	case '<', 0:
		return s + pad
	case '>':
		return pad + s
	case '^':
		left := (width - len(s)) / 2
		right := width - len(s) - left
		return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
	default:
		return s + pad
	}
}
