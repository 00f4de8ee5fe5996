package parsers

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/sevigo/gqlsense/parsers/graphql"
	"github.com/sevigo/gqlsense/schema"
)

// ParserRegistry tracks registered language plugins
type ParserRegistry interface {
	RegisterParser(plugin schema.ParserPlugin) error
	GetParser(language string) (schema.ParserPlugin, error)
	GetParserForFile(path string, info fs.FileInfo) (schema.ParserPlugin, error)
	GetParserForExtension(ext string) (schema.ParserPlugin, error)
	GetAllParsers() []schema.ParserPlugin
}

// RegisterLanguagePlugins builds a registry holding the schema language plugins.
// opts are forwarded to the GraphQL plugin.
func RegisterLanguagePlugins(logger *slog.Logger, opts ...graphql.Option) (ParserRegistry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	registry := NewRegistry(logger)

	plugins := []schema.ParserPlugin{
		graphql.NewGraphQLPlugin(logger.With("plugin", "graphql"), opts...),
	}

	for _, plugin := range plugins {
		if err := registry.RegisterParser(plugin); err != nil {
			return registry, fmt.Errorf("failed to register plugin %s: %w", plugin.Name(), err)
		}
	}

	logger.Debug("Language plugins registered", "count", len(registry.GetAllParsers()))
	return registry, nil
}
