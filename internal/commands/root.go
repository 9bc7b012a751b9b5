package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/plbank/internal/buildinfo"
	"github.com/cleared-dev/plbank/internal/config"
	"github.com/cleared-dev/plbank/internal/importer"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "plbank",
		Short:   "Import Polish bank exports as double-entry transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides the config (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newIdentifyCommand(opts))
	rootCmd.AddCommand(newFileAccountCommand(opts))
	rootCmd.AddCommand(newExtractCommand(opts))
	rootCmd.AddCommand(newImportersCommand(opts))
	rootCmd.AddCommand(newAccountsCommand(opts))

	return rootCmd
}

// setup loads the config and builds the importer registry.
func (o *globalOptions) setup(stderr io.Writer) (*config.Config, *importer.Registry, *log.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger, err := newLogger(stderr, level)
	if err != nil {
		return nil, nil, nil, err
	}

	reg, err := importer.FromConfig(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, reg, logger, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{Prefix: "plbank"})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}
