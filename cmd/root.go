// Package cmd provides the CLI commands for dayaim.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/config"
	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagDB      string
	flagBackend string
	flagConfig  string
)

// ctx is the runtime context for the running command.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dayaim",
	Short: "Plan your day around the goals that matter",
	Long: `dayaim keeps a daily plan: a focus goal, the tasks due today,
the habits due today, and a short review when the day is done.

Examples:
  dayaim goal add "Ship v1" --why "users are waiting"
  dayaim goal focus 3f2a
  dayaim task add "Write release notes" --due tomorrow --goal 3f2a
  dayaim habit add "Read 20 pages" --schedule weekdays
  dayaim today
  dayaim plan close --note "good day"`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeContext()
	},
	RunE: runToday,
}

// skipSetup lists commands that never touch the store.
var skipSetup = map[string]bool{
	"completion": true,
	"help":       true,
	"version":    true,
}

func setup(cmd *cobra.Command, args []string) error {
	if skipSetup[cmd.Name()] {
		return nil
	}

	if flagDebug {
		logging.InitDebug()
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, err = runtime.New(runtime.Options{Config: cfg, Debug: flagDebug, Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	ctx.Debugf("opened %s store at %s", cfg.Storage.Backend, ctx.DataPath())
	return nil
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = flagFormat
	}
	if flags.Changed("color") {
		cfg.Output.Color = flagColor
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDB
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = flagBackend
	}
}

// Execute runs the root command and reports any error in the selected
// output format.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
		// PersistentPostRunE does not run after a failed command.
		_ = closeContext()
	}
	return err
}

func reportError(err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	if ctx != nil {
		ctx.ReportError(err)
		return
	}
	fmt.Fprintln(os.Stderr, "Error: "+runtime.FormatError(err, flagDebug))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", config.FormatCLI,
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", config.ColorAuto,
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		"Database path (\":memory:\" for a throwaway store)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", config.BackendBadger,
		"Storage backend: badger, sqlite")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/dayaim/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dayaim %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
