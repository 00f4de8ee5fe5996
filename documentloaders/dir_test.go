package documentloaders_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gqlsense/documentloaders"
	"github.com/sevigo/gqlsense/parsers"
	logger "github.com/sevigo/gqlsense/parsers/testing"
)

// materialize copies an in-memory tree into a temp directory so filepath.WalkDir can see it.
func materialize(t *testing.T, tree fstest.MapFS) string {
	t.Helper()
	dir := t.TempDir()
	err := fs.WalkDir(tree, ".", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		target := filepath.Join(dir, path)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, readErr := tree.ReadFile(path)
		require.NoError(t, readErr)
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	return dir
}

func TestDirLoader_Load(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	registry, err := parsers.RegisterLanguagePlugins(log)
	require.NoError(t, err)

	root := materialize(t, fstest.MapFS{
		"api/users.graphql":        {Data: []byte("# A user.\ntype User {\n  id: ID!\n}\n\nscalar Email\n")},
		"api/search.gql":           {Data: []byte("union Hit =\n  | User\n")},
		"README.md":                {Data: []byte("# not a schema")},
		"node_modules/x/x.graphql": {Data: []byte("type Skipped")},
		"empty":                    {Mode: fs.ModeDir},
	})

	docs, err := documentloaders.NewDir(root, registry, documentloaders.WithLogger(log)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// WalkDir visits entries in lexical order: search.gql before users.graphql.
	assert.Equal(t, "api/search.gql", docs[0].Source())
	assert.Equal(t, "Hit", docs[0].Metadata["identifier"])
	assert.Equal(t, "union Hit =\n  | User", docs[0].PageContent)

	user := docs[1]
	assert.Equal(t, "api/users.graphql", user.Source())
	assert.Equal(t, "type", user.Metadata["chunk_type"])
	assert.Equal(t, 2, user.Metadata["line_start"])
	assert.Equal(t, 4, user.Metadata["line_end"])
	assert.Equal(t, "graphql", user.Metadata["language"])
	assert.Equal(t, "true", user.Metadata["has_doc"])
	assert.Equal(t, "# A user.\ntype User {\n  id: ID!\n}", user.PageContent)

	assert.Equal(t, "Email", docs[2].Metadata["identifier"])
	assert.Equal(t, 1, docs[2].Metadata["chunk_index"])
	assert.Equal(t, 2, docs[2].Metadata["total_chunks"])
}

func TestDirLoader_Options(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	registry, err := parsers.RegisterLanguagePlugins(log)
	require.NoError(t, err)

	root := materialize(t, fstest.MapFS{
		"generated/a.graphql":    {Data: []byte("type A")},
		"node_modules/b.graphql": {Data: []byte("type B")},
		"big.graphql":            {Data: []byte("type Big {\n  field: String\n}\n")},
	})

	docs, err := documentloaders.NewDir(root, registry,
		documentloaders.WithLogger(log),
		documentloaders.WithSkipDirs("generated"),
		documentloaders.WithMaxFileSize(10),
	).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "B", docs[0].Metadata["identifier"])
}

func TestDirLoader_Cancelled(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	registry, err := parsers.RegisterLanguagePlugins(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = documentloaders.NewDir(t.TempDir(), registry, documentloaders.WithLogger(log)).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDirLoader_MissingRoot(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	registry, err := parsers.RegisterLanguagePlugins(log)
	require.NoError(t, err)

	_, err = documentloaders.NewDir(filepath.Join(t.TempDir(), "nope"), registry).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirLoader_LoadFile(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	registry, err := parsers.RegisterLanguagePlugins(log)
	require.NoError(t, err)

	root := materialize(t, fstest.MapFS{
		"schema.graphqls": {Data: []byte("enum Role { A B }\ninput In {\n  r: Role\n}\n")},
		"notes.txt":       {Data: []byte("hello")},
	})
	loader := documentloaders.NewDir(root, registry, documentloaders.WithLogger(log))

	docs, err := loader.LoadFile(filepath.Join(root, "schema.graphqls"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "In", docs[1].Metadata["identifier"])

	_, err = loader.LoadFile(filepath.Join(root, "notes.txt"))
	require.ErrorIs(t, err, parsers.ErrPluginNotFound)
}
