package gitutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gqlsense/gitutil"
	logger "github.com/sevigo/gqlsense/parsers/testing"
)

// commitFile writes name into the worktree and commits it on the current branch.
func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "gqlsense", Email: "dev@gqlsense.test", When: time.Now()},
	})
	require.NoError(t, err)
}

// newSourceRepo builds a repository whose default branch holds main.graphql
// and whose "feature" branch additionally holds feature.graphql.
func newSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commitFile(t, repo, dir, "main.graphql", "type A {\n}\n")

	head, err := repo.Head()
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}))
	commitFile(t, repo, dir, "feature.graphql", "scalar F\n")
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Branch: head.Name()}))
	return dir
}

// isolateTempDir points os.TempDir at a fresh directory so leftover checkouts can be counted.
func isolateTempDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	return tmp
}

func checkouts(t *testing.T, tmp string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(tmp, "gqlsense-repo-*"))
	require.NoError(t, err)
	return matches
}

func TestCloner_EmptyURL(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	path, cleanup, err := gitutil.NewCloner(log).Clone(context.Background(), "")
	require.Error(t, err)
	assert.Empty(t, path)
	assert.Nil(t, cleanup)
}

func TestCloner_FailureRemovesCheckout(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	tmp := isolateTempDir(t)

	missing := filepath.Join(t.TempDir(), "no-such-repo")
	_, cleanup, err := gitutil.NewCloner(log).Clone(context.Background(), missing)
	require.Error(t, err)
	assert.Nil(t, cleanup)
	assert.Empty(t, checkouts(t, tmp))
}

func TestCloner_Clone(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	src := newSourceRepo(t)
	tmp := isolateTempDir(t)

	tests := []struct {
		name        string
		ref         string
		wantFeature bool
	}{
		{"default branch", "", false},
		{"named branch", "feature", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloner := gitutil.NewCloner(log)
			cloner.Ref = tt.ref

			path, cleanup, err := cloner.Clone(context.Background(), src)
			require.NoError(t, err)
			require.NotNil(t, cleanup)

			assert.FileExists(t, filepath.Join(path, "main.graphql"))
			_, statErr := os.Stat(filepath.Join(path, "feature.graphql"))
			assert.Equal(t, tt.wantFeature, statErr == nil)
			assert.Len(t, checkouts(t, tmp), 1)

			cleanup()
			assert.NoDirExists(t, path)
			assert.Empty(t, checkouts(t, tmp))
		})
	}
}

func TestCloner_UnknownRef(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	src := newSourceRepo(t)
	tmp := isolateTempDir(t)

	cloner := gitutil.NewCloner(log)
	cloner.Ref = "does-not-exist"
	_, _, err := cloner.Clone(context.Background(), src)
	require.Error(t, err)
	assert.Empty(t, checkouts(t, tmp))
}
