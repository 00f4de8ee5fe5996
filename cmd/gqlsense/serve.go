package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sevigo/gqlsense/lsp"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the language server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := lsp.NewServer(a.cfg.Server.Name,
				lsp.WithLogger(a.logger),
				lsp.WithVersion(a.cfg.Server.Version),
			)
			return s.RunStdio(glspVerbosity(a.logger))
		},
	}
}

// glspVerbosity maps our level onto commonlog's scale: 0 keeps glsp to
// errors and warnings, 2 adds its per-message debug lines.
func glspVerbosity(logger *slog.Logger) int {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		return 2
	}
	return 0
}
