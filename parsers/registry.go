package parsers

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/sevigo/gqlsense/schema"
)

// ErrPluginNotFound is returned when no plugin matches a language, extension or file.
var ErrPluginNotFound = errors.New("language plugin not found")

type registry struct {
	plugins    map[string]schema.ParserPlugin // language name -> plugin
	extensions map[string]schema.ParserPlugin // ".ext" -> plugin
	logger     *slog.Logger
	mu         sync.RWMutex
}

func NewRegistry(logger *slog.Logger) ParserRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &registry{
		plugins:    make(map[string]schema.ParserPlugin),
		extensions: make(map[string]schema.ParserPlugin),
		logger:     logger,
	}
}

// RegisterParser adds a plugin under its name and every extension it claims.
// Names must be unique; a later plugin claiming an existing extension takes it over.
func (r *registry) RegisterParser(plugin schema.ParserPlugin) error {
	if plugin == nil {
		return errors.New("cannot register nil plugin")
	}

	name := plugin.Name()
	if name == "" {
		return errors.New("plugin must have a non-empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin with name %q already registered", name)
	}
	r.plugins[name] = plugin

	for _, ext := range plugin.Extensions() {
		ext = normalizeExt(ext)
		if ext == "" {
			continue
		}
		if prev, taken := r.extensions[ext]; taken {
			r.logger.Warn("Extension reassigned", "extension", ext, "from", prev.Name(), "to", name)
		}
		r.extensions[ext] = plugin
	}

	r.logger.Debug("Registered language plugin", "language", name, "extensions", plugin.Extensions())
	return nil
}

func (r *registry) GetParser(language string) (schema.ParserPlugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, ok := r.plugins[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, language)
	}
	return plugin, nil
}

// GetParserForFile tries the file extension first and then asks each plugin's CanHandle.
func (r *registry) GetParserForFile(path string, info fs.FileInfo) (schema.ParserPlugin, error) {
	if ext := filepath.Ext(path); ext != "" {
		if plugin, err := r.GetParserForExtension(ext); err == nil {
			return plugin, nil
		}
	}

	for _, plugin := range r.GetAllParsers() {
		if plugin.CanHandle(path, info) {
			return plugin, nil
		}
	}

	return nil, fmt.Errorf("%w for file %s", ErrPluginNotFound, path)
}

func (r *registry) GetParserForExtension(ext string) (schema.ParserPlugin, error) {
	ext = normalizeExt(ext)
	if ext == "" {
		return nil, fmt.Errorf("%w: empty extension", ErrPluginNotFound)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w for extension %s", ErrPluginNotFound, ext)
	}
	return plugin, nil
}

// GetAllParsers returns the registered plugins sorted by name.
func (r *registry) GetAllParsers() []schema.ParserPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]schema.ParserPlugin, 0, len(r.plugins))
	for _, plugin := range r.plugins {
		plugins = append(plugins, plugin)
	}
	slices.SortFunc(plugins, func(a, b schema.ParserPlugin) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return plugins
}

// normalizeExt lower-cases an extension and ensures a leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}
