// Package parsetext turns a Python set literal's str() representation (the
// textual form produced at the host/client boundary, e.g. by a caller that
// serialized a set with str(some_set) before sending it over the wire)
// into the package's canonical comma-joined element text.
//
// Grounded on original_source/.../settrie.cpp's python_set_as_string: this
// is a direct translation of its three passes (unwrap frozenset(...),
// strip the outer braces, rewrite commas/spaces), not a reinterpretation.
package parsetext

import "strings"

// quoteNone/quoteSingle/quoteDouble track which Python string-literal
// delimiter, if any, rewriteElements is currently inside.
const (
	quoteNone byte = iota
	quoteSingle
	quoteDouble
)

// ParsePythonSet rewrites repr, converting the empty set's two spellings
// ("set()" and "frozenset()") to "", unwrapping a "frozenset(...)" wrapper
// around its braces, and, once the outer braces are found, collapsing
// the single space Python prints after each comma and escaping commas
// that fall inside a quoted element to 0x82, so a later split on ','
// breaks only at top-level element boundaries.
//
// A repr that isn't bracketed in either of these shapes is returned
// unchanged: the reference implementation's python_set_as_string falls
// back to treating it as already being one bare element.
func ParsePythonSet(repr string) string {
	if repr == "set()" || repr == "frozenset()" {
		return ""
	}

	body := repr
	if len(repr) > 10 && strings.HasPrefix(repr, "frozenset(") && repr[len(repr)-1] == ')' {
		body = repr[10 : len(repr)-1]
	}

	if len(body) == 0 || body[0] != '{' || body[len(body)-1] != '}' {
		return repr
	}

	return rewriteElements(body[1 : len(body)-1])
}

// rewriteElements performs the single character-by-character pass described
// above over the braces-stripped interior of a set literal.
func rewriteElements(s string) string {
	var b strings.Builder
	quote := quoteNone
	afterComma := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\'':
			switch quote {
			case quoteNone:
				quote = quoteSingle
			case quoteSingle:
				quote = quoteNone
			}
			b.WriteByte(c)
			afterComma = false
		case '"':
			switch quote {
			case quoteNone:
				quote = quoteDouble
			case quoteDouble:
				quote = quoteNone
			}
			b.WriteByte(c)
			afterComma = false
		case ' ':
			if !afterComma {
				b.WriteByte(' ')
			}
		case ',':
			if quote == quoteNone {
				b.WriteByte(',')
				afterComma = true
			} else {
				b.WriteByte(0x82)
			}
		default:
			b.WriteByte(c)
			afterComma = false
		}
	}
	return b.String()
}

// Elements parses repr and splits it into its top-level elements, ready to
// pass to settrie.Index's []string-taking operations. A repr that parses to
// the empty set returns a nil slice.
func Elements(repr string) []string {
	joined := ParsePythonSet(repr)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
