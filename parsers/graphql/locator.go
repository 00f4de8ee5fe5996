package graphql

// WordAt returns the identifier token touching the byte offset. Tokens are
// maximal runs of [A-Za-z0-9_]; a token spanning [start, start+len) also
// matches an offset equal to start+len, so a cursor sitting just after a word
// still resolves to it. The leftmost matching token wins.
func WordAt(text string, offset int) (string, bool) {
	i := 0
	for i < len(text) {
		if !isIdentByte(text[i]) {
			i++
			continue
		}
		start := i
		i += identLen(text[i:])
		if offset >= start && offset <= i {
			return text[start:i], true
		}
	}
	return "", false
}
