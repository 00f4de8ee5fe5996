package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sevigo/gqlsense/documentloaders"
)

func newSymbolsCmd(a *app) *cobra.Command {
	var repoURL, ref string

	cmd := &cobra.Command{
		Use:   "symbols [file|dir]",
		Short: "List the declarations in a schema file, a directory or a remote repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repoURL != "" {
				return a.remoteSymbols(cmd, repoURL, ref)
			}
			if len(args) == 0 {
				return errors.New("a file or directory is required unless --repo is set")
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if info.IsDir() {
				return a.dirSymbols(cmd, args[0])
			}

			return a.fileSymbols(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&repoURL, "repo", "", "index a remote git repository instead of a local path")
	cmd.Flags().StringVar(&ref, "ref", "", "branch to check out with --repo")
	return cmd
}

func (a *app) dirOptions() []documentloaders.DirLoaderOption {
	opts := []documentloaders.DirLoaderOption{
		documentloaders.WithLogger(a.logger),
		documentloaders.WithMaxFileSize(a.cfg.Loader.MaxFileSize),
	}
	if a.cfg.Loader.SkipDirs != nil {
		opts = append(opts, documentloaders.WithSkipDirs(a.cfg.Loader.SkipDirs...))
	}
	return opts
}

func (a *app) dirSymbols(cmd *cobra.Command, root string) error {
	registry, err := a.registry()
	if err != nil {
		return err
	}
	docs, err := documentloaders.NewDir(root, registry, a.dirOptions()...).Load(cmd.Context())
	if err != nil {
		return err
	}
	return writeDocuments(cmd.OutOrStdout(), docs)
}

// fileSymbols indexes one file through the registry, so only files a parser
// claims (by extension or configured extras) are accepted.
func (a *app) fileSymbols(cmd *cobra.Command, path string) error {
	registry, err := a.registry()
	if err != nil {
		return err
	}
	docs, err := documentloaders.NewDir(filepath.Dir(path), registry, a.dirOptions()...).LoadFile(path)
	if err != nil {
		return err
	}
	return writeDocuments(cmd.OutOrStdout(), docs)
}

func (a *app) remoteSymbols(cmd *cobra.Command, repoURL, ref string) error {
	registry, err := a.registry()
	if err != nil {
		return err
	}
	loader := documentloaders.NewRemoteGitRepoLoader(repoURL, registry, a.logger)
	loader.Ref = ref
	loader.DirOptions = a.dirOptions()

	docs, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	return writeDocuments(cmd.OutOrStdout(), docs)
}
