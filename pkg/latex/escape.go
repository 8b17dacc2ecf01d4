package latex

import "strings"

// Escape transforms text so it renders as literal characters in a LaTeX
// body context instead of being parsed as LaTeX syntax.
//
// Processing is a single pass, one rune at a time. Chained whole-string
// substitutions would corrupt sequences produced by earlier substitutions
// (escaping backslashes after ampersands would mangle the \& just emitted),
// so each input rune dispatches through the fixed table exactly once.
func Escape(text string) (escaped string) {
	var builder strings.Builder
	builder.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\\':
			builder.WriteString(`\textbackslash{}`)
		case '&':
			builder.WriteString(`\&`)
		case '%':
			builder.WriteString(`\%`)
		case '$':
			builder.WriteString(`\$`)
		case '#':
			builder.WriteString(`\#`)
		case '_':
			builder.WriteString(`\_`)
		case '{':
			builder.WriteString(`\{`)
		case '}':
			builder.WriteString(`\}`)
		case '~':
			builder.WriteString(`\textasciitilde{}`)
		case '^':
			builder.WriteString(`\textasciicircum{}`)
		default:
			builder.WriteRune(r)
		}
	}

	escaped = builder.String()
	return escaped
}

// EscapeValue escapes string values and returns everything else unchanged.
// It is registered with the template engine so template authors can apply
// it to any profile field without caring whether the field is text.
func EscapeValue(value interface{}) (result interface{}) {
	text, ok := value.(string)
	if !ok {
		result = value
		return result
	}

	result = Escape(text)
	return result
}
