// Package graphql indexes the top-level declarations of GraphQL SDL documents
// and exposes them through the schema.ParserPlugin interface.
package graphql

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sevigo/gqlsense/schema"
)

var defaultExtensions = []string{".graphql", ".graphqls", ".gql"}

// GraphQLPlugin implements schema.ParserPlugin for SDL files.
type GraphQLPlugin struct {
	logger     *slog.Logger
	extensions []string
}

// Option configures a GraphQLPlugin.
type Option func(*GraphQLPlugin)

// WithExtensions registers additional file extensions, with or without the leading dot.
func WithExtensions(exts ...string) Option {
	return func(p *GraphQLPlugin) {
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if ext[0] != '.' {
				ext = "." + ext
			}
			if !slices.Contains(p.extensions, ext) {
				p.extensions = append(p.extensions, ext)
			}
		}
	}
}

func NewGraphQLPlugin(logger *slog.Logger, opts ...Option) schema.ParserPlugin {
	if logger == nil {
		logger = slog.Default()
	}
	p := &GraphQLPlugin{
		logger:     logger,
		extensions: slices.Clone(defaultExtensions),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GraphQLPlugin) Name() string {
	return "graphql"
}

func (p *GraphQLPlugin) Extensions() []string {
	return slices.Clone(p.extensions)
}

func (p *GraphQLPlugin) CanHandle(path string, info fs.FileInfo) bool {
	if info != nil && info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(p.extensions, ext)
}
