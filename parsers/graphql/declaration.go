package graphql

// Kind is the keyword that introduces a top-level declaration.
type Kind string

const (
	KindType      Kind = "type"
	KindEnum      Kind = "enum"
	KindUnion     Kind = "union"
	KindInterface Kind = "interface"
	KindScalar    Kind = "scalar"
	KindInput     Kind = "input"
)

// Kinds lists every declaration keyword the scanner recognises.
var Kinds = []Kind{KindType, KindEnum, KindUnion, KindInterface, KindScalar, KindInput}

// Declaration is one top-level definition found in a document.
type Declaration struct {
	Kind Kind
	Name string
	// Line is the zero-based index of the introducer line.
	Line int
	// LineText is the introducer line with surrounding whitespace removed.
	LineText string
	// Documentation holds the comment lines directly above the declaration,
	// verbatim and joined by "\n". Empty when there were none.
	Documentation string
}

// HasDocumentation reports whether a comment block was attached.
func (d Declaration) HasDocumentation() bool {
	return d.Documentation != ""
}

// Resolve returns the first declaration named name. Matching is exact and
// case-sensitive; on duplicates the earliest one in the document wins.
func Resolve(decls []Declaration, name string) (Declaration, bool) {
	for _, d := range decls {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}
