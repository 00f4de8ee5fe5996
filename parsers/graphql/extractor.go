package graphql

import (
	"strconv"
	"strings"

	"github.com/sevigo/gqlsense/schema"
)

// ExtractMetadata lists the declarations of a file together with per-kind counts.
func (p *GraphQLPlugin) ExtractMetadata(content string, path string) (schema.FileMetadata, error) {
	metadata := schema.FileMetadata{
		FilePath:    path,
		Language:    p.Name(),
		Definitions: []schema.CodeEntityDefinition{},
		Symbols:     []schema.CodeSymbol{},
		Properties:  map[string]string{},
	}

	if strings.TrimSpace(content) == "" {
		p.logger.Debug("Empty content for GraphQL file", "path", path)
		metadata.Properties["total_declarations"] = "0"
		return metadata, nil
	}

	counters := make(map[Kind]int, len(Kinds))
	for _, d := range Scan(content) {
		counters[d.Kind]++
		first, last := ExpandLines(content, d)

		metadata.Definitions = append(metadata.Definitions, schema.CodeEntityDefinition{
			Type:          string(d.Kind),
			Name:          d.Name,
			LineStart:     first + 1,
			LineEnd:       last + 1,
			Signature:     d.LineText,
			Documentation: d.Documentation,
		})
		metadata.Symbols = append(metadata.Symbols, schema.CodeSymbol{
			Name:      d.Name,
			Type:      string(d.Kind),
			Category:  string(CategoryOf(d.Kind)),
			LineStart: first + 1,
			LineEnd:   last + 1,
		})
	}

	for _, k := range Kinds {
		metadata.Properties["total_"+string(k)] = strconv.Itoa(counters[k])
	}
	metadata.Properties["total_declarations"] = strconv.Itoa(len(metadata.Definitions))

	return metadata, nil
}
