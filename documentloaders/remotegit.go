package documentloaders

import (
	"context"
	"log/slog"

	"github.com/sevigo/gqlsense/gitutil"
	"github.com/sevigo/gqlsense/parsers"
	"github.com/sevigo/gqlsense/schema"
)

// RemoteGitRepoLoader clones a repository and indexes its schema files with a DirLoader.
type RemoteGitRepoLoader struct {
	RepoURL        string
	Ref            string
	ParserRegistry parsers.ParserRegistry
	Logger         *slog.Logger
	DirOptions     []DirLoaderOption
}

func NewRemoteGitRepoLoader(repoURL string, registry parsers.ParserRegistry, logger *slog.Logger) *RemoteGitRepoLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteGitRepoLoader{
		RepoURL:        repoURL,
		ParserRegistry: registry,
		Logger:         logger,
	}
}

func (l *RemoteGitRepoLoader) Load(ctx context.Context) ([]schema.Document, error) {
	cloner := gitutil.NewCloner(l.Logger)
	cloner.Ref = l.Ref
	tempPath, cleanup, err := cloner.Clone(ctx, l.RepoURL)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	opts := append([]DirLoaderOption{WithLogger(l.Logger)}, l.DirOptions...)
	documents, err := NewDir(tempPath, l.ParserRegistry, opts...).Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range documents {
		documents[i].Metadata["original_source_url"] = l.RepoURL
	}
	return documents, nil
}
