package graphql

import (
	"strings"
	"unicode"
)

const (
	blockCommentDelimiter = `"""`
	lineCommentMarker     = "#"
)

// scanState is carried from one line to the next during Scan.
type scanState struct {
	pendingDoc     []string
	inBlockComment bool
}

// Scan extracts the top-level declarations of text in document order.
// It never fails: malformed input yields fewer declarations, not an error.
// An unterminated block comment hides everything after it.
func Scan(text string) []Declaration {
	decls := make([]Declaration, 0)
	var st scanState
	for i, line := range splitLines(text) {
		if d, ok := st.step(i, line); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// step consumes one raw line and returns a declaration if the line introduced one.
func (st *scanState) step(index int, line string) (Declaration, bool) {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, blockCommentDelimiter):
		st.pendingDoc = append(st.pendingDoc, line)
		// """ text """ on a single line opens and closes in place.
		if strings.Count(trimmed, blockCommentDelimiter) != 2 {
			st.inBlockComment = !st.inBlockComment
		}
		return Declaration{}, false

	case st.inBlockComment:
		st.pendingDoc = append(st.pendingDoc, line)
		return Declaration{}, false

	case strings.HasPrefix(trimmed, lineCommentMarker):
		st.pendingDoc = append(st.pendingDoc, line)
		return Declaration{}, false
	}

	if kind, name, ok := matchDeclaration(line); ok {
		d := Declaration{
			Kind:          kind,
			Name:          name,
			Line:          index,
			LineText:      trimmed,
			Documentation: strings.Join(st.pendingDoc, "\n"),
		}
		st.pendingDoc = nil
		return d, true
	}

	// Blank lines keep pending documentation; any other content drops it.
	if trimmed != "" {
		st.pendingDoc = nil
	}
	return Declaration{}, false
}

// matchDeclaration recognises `<kind><whitespace><identifier>` anchored at the
// start of the raw line. The identifier is the maximal run of identifier
// characters, so it is always followed by a non-identifier character or the
// end of the line.
func matchDeclaration(line string) (Kind, string, bool) {
	for _, kind := range Kinds {
		rest, ok := strings.CutPrefix(line, string(kind))
		if !ok {
			continue
		}
		afterSpace := strings.TrimLeftFunc(rest, unicode.IsSpace)
		if len(afterSpace) == len(rest) {
			continue
		}
		n := identLen(afterSpace)
		if n == 0 {
			continue
		}
		return kind, afterSpace[:n], true
	}
	return "", "", false
}

// identLen returns the length of the identifier run at the start of s.
func identLen(s string) int {
	n := 0
	for n < len(s) && isIdentByte(s[n]) {
		n++
	}
	return n
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// splitLines splits on "\n" and drops a trailing "\r" so CRLF documents
// index the same as LF ones.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
