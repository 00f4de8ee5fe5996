// Package query answers editor queries against a single GraphQL document.
// Every call rescans the text it is given; nothing is cached between calls.
package query

import (
	"strings"
	"unicode/utf16"

	"github.com/sevigo/gqlsense/parsers/graphql"
)

// MarkupMarkdown is the only content format Describe produces.
const MarkupMarkdown = "markdown"

// Position is a zero-based line and UTF-16 character offset.
type Position struct {
	Line      int
	Character int
}

type Range struct {
	Start Position
	End   Position
}

// Hover is formatted documentation for a symbol.
type Hover struct {
	Format string
	Value  string
}

// Symbol is one outline entry.
type Symbol struct {
	Name           string
	Kind           graphql.Kind
	Category       graphql.Category
	Range          Range
	SelectionRange Range
}

// Locate finds the declaration of the identifier at offset and returns the
// range of its introducer line.
func Locate(text string, offset int) (Range, bool) {
	word, ok := graphql.WordAt(text, offset)
	if !ok {
		return Range{}, false
	}
	d, ok := graphql.Resolve(graphql.Scan(text), word)
	if !ok {
		return Range{}, false
	}
	return lineRange(d), true
}

// Describe renders markdown documentation for the identifier at offset.
// Built-in scalars are described from the static table and cannot be
// shadowed by declarations in the document.
func Describe(text string, offset int) (Hover, bool) {
	word, ok := graphql.WordAt(text, offset)
	if !ok {
		return Hover{}, false
	}

	if desc, ok := graphql.BuiltinScalar(word); ok {
		return Hover{
			Format: MarkupMarkdown,
			Value:  codeBlock("scalar "+word) + "\n" + desc,
		}, true
	}

	d, ok := graphql.Resolve(graphql.Scan(text), word)
	if !ok {
		return Hover{}, false
	}

	body := graphql.Expand(text, d)
	if d.HasDocumentation() {
		body = d.Documentation + "\n" + body
	}
	return Hover{Format: MarkupMarkdown, Value: codeBlock(body)}, true
}

// Enumerate lists every declaration in document order. The result is never nil.
func Enumerate(text string) []Symbol {
	decls := graphql.Scan(text)
	symbols := make([]Symbol, 0, len(decls))
	for _, d := range decls {
		r := lineRange(d)
		symbols = append(symbols, Symbol{
			Name:           d.Name,
			Kind:           d.Kind,
			Category:       graphql.CategoryOf(d.Kind),
			Range:          r,
			SelectionRange: r,
		})
	}
	return symbols
}

func lineRange(d graphql.Declaration) Range {
	return Range{
		Start: Position{Line: d.Line},
		End:   Position{Line: d.Line, Character: utf16Len(d.LineText)},
	}
}

func codeBlock(body string) string {
	var b strings.Builder
	b.WriteString("```graphql\n")
	b.WriteString(body)
	b.WriteString("\n```")
	return b.String()
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
