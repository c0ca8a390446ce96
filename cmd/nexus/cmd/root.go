// Package cmd implements the nexus command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nexus/internal/config"
	applog "nexus/internal/log"
)

// cfgFile holds the config file path from the --config flag.
var cfgFile string

var loadConfigFunc = func() (config.Config, error) {
	return config.Load(cfgFile)
}

var setLogLevelFunc = applog.SetLevel

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nexus",
		Short: "Dashboard settings service",
		Long: `nexus serves a personal dashboard and owns its settings: theme, background
image, clock, search engines and integrations. Settings persist to a database,
a JSON file or memory, and theme and image catalogs load from embedded assets
or remote URLs.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nexus.yaml or $HOME/.config/nexus/nexus.yaml)")

	root.AddCommand(
		newServeCommand(),
		newSettingsCommand(),
		newThemeCommand(),
		newImageCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	applog.SetOutput(os.Stderr)
	if err := NewRootCommand().Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

// setupLogging applies the configured level and format.
func setupLogging(cfg config.Config) error {
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		return fmt.Errorf("configure log level: %w", err)
	}
	if err := applog.SetFormat(cfg.Logging.Format); err != nil {
		return fmt.Errorf("configure log format: %w", err)
	}
	return nil
}
