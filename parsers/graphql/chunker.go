package graphql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sevigo/gqlsense/schema"
)

// Chunk emits one chunk per top-level declaration: its documentation block
// followed by the expanded body. Line numbers are 1-based.
func (p *GraphQLPlugin) Chunk(content string, path string, opts *schema.CodeChunkingOptions) ([]schema.CodeChunk, error) {
	if opts == nil {
		opts = &schema.CodeChunkingOptions{}
	}

	decls := Scan(content)
	chunks := make([]schema.CodeChunk, 0, len(decls))

	for _, d := range decls {
		body := Expand(content, d)
		first, last := ExpandLines(content, d)

		if opts.MaxLinesPerChunk > 0 {
			lines := strings.Split(body, "\n")
			if len(lines) > opts.MaxLinesPerChunk {
				body = strings.Join(lines[:opts.MaxLinesPerChunk], "\n")
				last = first + opts.MaxLinesPerChunk - 1
			}
		}

		chunkContent := body
		if d.HasDocumentation() && !opts.OmitDocumentation {
			chunkContent = d.Documentation + "\n" + body
		}

		chunks = append(chunks, schema.CodeChunk{
			Content:    chunkContent,
			LineStart:  first + 1,
			LineEnd:    last + 1,
			Type:       string(d.Kind),
			Identifier: d.Name,
			Annotations: map[string]string{
				"name":      d.Name,
				"type":      string(d.Kind),
				"signature": d.LineText,
				"has_doc":   strconv.FormatBool(d.HasDocumentation()),
			},
		})
	}

	p.logger.Debug("Created chunks for GraphQL file", "count", len(chunks), "path", path)
	for i, chunk := range chunks {
		p.logger.Debug("Chunk info",
			"index", i,
			"type", chunk.Type,
			"identifier", chunk.Identifier,
			"lines", fmt.Sprintf("%d-%d", chunk.LineStart, chunk.LineEnd),
		)
	}

	return chunks, nil
}
