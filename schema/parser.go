package schema

import (
	"io/fs"
)

// ParserPlugin is implemented by every language parser the registry can hand out.
type ParserPlugin interface {
	Name() string
	Extensions() []string
	CanHandle(path string, info fs.FileInfo) bool
	Chunk(content string, path string, opts *CodeChunkingOptions) ([]CodeChunk, error)
	ExtractMetadata(content string, path string) (FileMetadata, error)
}

// FileMetadata summarises the top-level declarations of a single file.
type FileMetadata struct {
	FilePath    string                 `json:"file_path"`
	Language    string                 `json:"language"`
	Definitions []CodeEntityDefinition `json:"definitions"`
	Symbols     []CodeSymbol           `json:"symbols"`
	Properties  map[string]string      `json:"properties"`
}

// CodeEntityDefinition describes one declaration. Line numbers are 1-based.
type CodeEntityDefinition struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	LineStart     int    `json:"line_start"`
	LineEnd       int    `json:"line_end"`
	Signature     string `json:"signature"`
	Documentation string `json:"documentation"`
}

type CodeSymbol struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
}

// CodeChunk is a self-contained piece of a file, usually one declaration with its body.
type CodeChunk struct {
	Content     string            `json:"content"`
	LineStart   int               `json:"lineStart"`
	LineEnd     int               `json:"lineEnd"`
	Type        string            `json:"type"`
	Identifier  string            `json:"identifier"`
	Annotations map[string]string `json:"annotations"`
}

// CodeChunkingOptions tunes Chunk. A nil value means defaults.
type CodeChunkingOptions struct {
	// OmitDocumentation drops the leading comment block from chunk content.
	OmitDocumentation bool
	// MaxLinesPerChunk truncates chunk bodies; zero means unlimited.
	MaxLinesPerChunk int
}
