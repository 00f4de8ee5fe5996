package graphql

import "strings"

const unionMemberMarker = "|"

// Expand returns the source span of d's body: the brace-delimited block for
// types, interfaces, inputs and enums, the `|` continuation lines for unions,
// and just the introducer line for scalars. Unbalanced braces simply run to
// the end of the document.
func Expand(text string, d Declaration) string {
	lines := splitLines(text)
	if d.Line < 0 || d.Line >= len(lines) {
		return d.LineText
	}

	span := []string{lines[d.Line]}
	next := d.Line + 1

	switch d.Kind {
	case KindType, KindInterface, KindInput, KindEnum:
		depth := braceDelta(lines[d.Line])
		for ; depth > 0 && next < len(lines); next++ {
			span = append(span, lines[next])
			depth += braceDelta(lines[next])
		}

	case KindUnion:
		for ; next < len(lines); next++ {
			if !strings.HasPrefix(strings.TrimSpace(lines[next]), unionMemberMarker) {
				break
			}
			span = append(span, lines[next])
		}
	}

	return strings.Join(span, "\n")
}

// ExpandLines is Expand reported as a zero-based inclusive line range.
func ExpandLines(text string, d Declaration) (first, last int) {
	return d.Line, d.Line + strings.Count(Expand(text, d), "\n")
}

func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}
