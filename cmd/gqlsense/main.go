// Command gqlsense indexes GraphQL schema files and serves them to editors.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/sevigo/gqlsense/config"
	"github.com/sevigo/gqlsense/parsers"
	"github.com/sevigo/gqlsense/parsers/graphql"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "gqlsense",
		Short:        "Navigate GraphQL schema files",
		Long:         "gqlsense finds declarations, documentation and outlines in GraphQL SDL files, from the command line or as a language server.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newServeCmd(a),
		newSymbolsCmd(a),
		newDefinitionCmd(a),
		newHoverCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	slog.SetDefault(logger)
	return nil
}

// newLogger writes to w, which is stderr outside of tests: stdout belongs to
// command output and, for serve, to the protocol stream.
func newLogger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Log.Format) {
	case config.FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	case config.FormatText:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr,
		})), nil
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", config.ErrInvalidConfig, cfg.Log.Format)
	}
}

func (a *app) registry() (parsers.ParserRegistry, error) {
	return parsers.RegisterLanguagePlugins(a.logger, graphql.WithExtensions(a.cfg.Parser.Extensions...))
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
