// Package documentloaders turns schema files on disk into per-declaration documents.
package documentloaders

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/sevigo/gqlsense/parsers"
	"github.com/sevigo/gqlsense/schema"
)

const defaultMaxFileSize = 10 * 1024 * 1024

var defaultSkipDirs = []string{".git", ".svn", ".hg", "node_modules", "vendor", "dist", "build"}

// Loader produces documents from some source.
type Loader interface {
	Load(ctx context.Context) ([]schema.Document, error)
}

// DirLoader walks a directory and indexes every file a registered parser
// claims. Each file is indexed on its own; names are never resolved across files.
type DirLoader struct {
	root           string
	parserRegistry parsers.ParserRegistry
	logger         *slog.Logger
	maxFileSize    int64
	skipDirs       []string
}

type DirLoaderOption func(*DirLoader)

func WithLogger(logger *slog.Logger) DirLoaderOption {
	return func(l *DirLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxFileSize skips files larger than size bytes. Zero keeps the default.
func WithMaxFileSize(size int64) DirLoaderOption {
	return func(l *DirLoader) {
		if size > 0 {
			l.maxFileSize = size
		}
	}
}

// WithSkipDirs replaces the list of directory names that are not descended into.
func WithSkipDirs(names ...string) DirLoaderOption {
	return func(l *DirLoader) {
		l.skipDirs = slices.Clone(names)
	}
}

func NewDir(root string, registry parsers.ParserRegistry, opts ...DirLoaderOption) *DirLoader {
	loader := &DirLoader{
		root:           root,
		parserRegistry: registry,
		logger:         slog.Default(),
		maxFileSize:    defaultMaxFileSize,
		skipDirs:       slices.Clone(defaultSkipDirs),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// Load returns one document per declaration, in walk order (lexical by path,
// then document order within a file). Unreadable entries are skipped with a
// warning; only cancellation or a failure on the root aborts the walk.
func (l *DirLoader) Load(ctx context.Context) ([]schema.Document, error) {
	l.logger.Debug("Loading schema directory", "root", l.root)

	if _, err := os.Stat(l.root); err != nil {
		return nil, err
	}

	var documents []schema.Document
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			l.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}

		if d.IsDir() {
			if path != l.root && slices.Contains(l.skipDirs, d.Name()) {
				l.logger.Debug("Skipping excluded directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			l.logger.Warn("Could not get file info, skipping", "path", path, "error", err)
			return nil
		}
		if info.Size() > l.maxFileSize {
			l.logger.Debug("Skipping oversized file", "path", path, "size", info.Size())
			return nil
		}

		parser, err := l.parserRegistry.GetParserForFile(path, info)
		if err != nil {
			return nil
		}

		documents = append(documents, l.processFile(path, info, parser)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Schema directory loaded", "root", l.root, "total_documents", len(documents))
	return documents, nil
}

// LoadFile indexes a single file regardless of where it lives.
func (l *DirLoader) LoadFile(path string) ([]schema.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	parser, err := l.parserRegistry.GetParserForFile(path, info)
	if err != nil {
		return nil, err
	}
	return l.processFile(path, info, parser), nil
}

func (l *DirLoader) processFile(path string, info fs.FileInfo, parser schema.ParserPlugin) []schema.Document {
	content, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("Cannot read file, skipping", "path", path, "error", err)
		return nil
	}

	relPath, err := filepath.Rel(l.root, path)
	if err != nil {
		relPath = path
	}

	baseMetadata := map[string]any{
		"source":    filepath.ToSlash(relPath),
		"language":  parser.Name(),
		"file_size": info.Size(),
		"mod_time":  info.ModTime(),
	}

	chunks, err := parser.Chunk(string(content), path, nil)
	if err != nil {
		l.logger.Warn("Chunking failed, skipping file", "path", path, "parser", parser.Name(), "error", err)
		return nil
	}

	documents := make([]schema.Document, 0, len(chunks))
	for i, chunk := range chunks {
		documents = append(documents, schema.NewDocument(chunk.Content, buildChunkMetadata(baseMetadata, chunk, i, len(chunks))))
	}

	l.logger.Debug("File indexed", "path", path, "parser", parser.Name(), "declarations", len(documents))
	return documents
}

func buildChunkMetadata(base map[string]any, chunk schema.CodeChunk, index, total int) map[string]any {
	md := make(map[string]any, len(base)+len(chunk.Annotations)+6)
	for k, v := range base {
		md[k] = v
	}
	md["identifier"] = chunk.Identifier
	md["chunk_type"] = chunk.Type
	md["line_start"] = chunk.LineStart
	md["line_end"] = chunk.LineEnd
	md["chunk_index"] = index
	md["total_chunks"] = total
	for k, v := range chunk.Annotations {
		if _, taken := md[k]; !taken {
			md[k] = v
		}
	}
	return md
}
