package main

import (
	"fmt"
	"log/slog"

	"github.com/desertwitch/sysat/internal/configuration"
	"github.com/desertwitch/sysat/internal/entropy"
	"github.com/desertwitch/sysat/internal/replace"
	"github.com/desertwitch/sysat/internal/schema"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share once the configuration is loaded.
type app struct {
	configPath string
	debug      bool

	settings    *configuration.Settings
	unixHandler *schema.Unix
}

func (a *app) load(*cobra.Command, []string) error {
	settings, err := configuration.NewHandler(&configuration.GodotenvProvider{}).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.debug {
		settings.LogLevel = slog.LevelDebug
	}
	setupLogging(settings.LogLevel)

	slog.Debug("Configuration loaded.",
		"path", a.configPath,
		"attempts", settings.TempAttempts,
		"sync", settings.Sync,
	)

	a.settings = settings

	return nil
}

func (a *app) replaceHandler() *replace.Handler {
	h := replace.NewHandler(a.unixHandler, entropy.NewSource(a.unixHandler))
	a.settings.Apply(h)

	return h
}

func newRootCmd() *cobra.Command {
	a := &app{
		unixHandler: &schema.Unix{},
	}

	rootCmd := &cobra.Command{
		Use:   "sysat",
		Short: "Raw directory listing and atomic file replacement",
		Long: `sysat talks to the Linux kernel directly: it lists directories from the raw
getdents records, replaces files atomically through a temporary sibling and
explains kernel error codes.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("sysat version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", configuration.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newLsCmd(a),
		newWriteCmd(a),
		newMktempCmd(a),
		newErrnoCmd(),
	)

	return rootCmd
}
