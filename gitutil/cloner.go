package gitutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Cloner makes shallow, throwaway checkouts of remote repositories.
type Cloner struct {
	Logger *slog.Logger
	// Ref optionally selects a branch to check out instead of the default one.
	Ref string
}

func NewCloner(logger *slog.Logger) *Cloner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cloner{Logger: logger}
}

// Clone checks repoURL out into a temporary directory. The returned cleanup
// function removes it and must be called once the caller is done.
func (c *Cloner) Clone(ctx context.Context, repoURL string) (string, func(), error) {
	if repoURL == "" {
		return "", nil, errors.New("repository URL must not be empty")
	}

	tempPath, err := os.MkdirTemp("", "gqlsense-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	c.Logger.DebugContext(ctx, "Cloning repository", "url", repoURL, "path", tempPath, "ref", c.Ref)

	cleanup := func() {
		c.Logger.Debug("Removing temporary checkout", "path", tempPath)
		_ = os.RemoveAll(tempPath)
	}

	opts := &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
	}
	if c.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(c.Ref)
	}

	if _, err := git.PlainCloneContext(ctx, tempPath, false, opts); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to clone repo '%s': %w", repoURL, err)
	}

	c.Logger.InfoContext(ctx, "Repository cloned", "url", repoURL)
	return tempPath, cleanup, nil
}
