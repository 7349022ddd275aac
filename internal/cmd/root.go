package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for filekit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filekit",
		Short: "Small file maintenance utilities for game asset folders",
		Long: `Filekit bundles four independent file utilities:

  fix-state  rewrite state=<n> tokens in a data file from an error log
  listdiff   remove the names of one list from another, with a backup
  lsreport   write a text, markdown or HTML report of a directory's files
  resize     produce small and medium copies of every image in a folder

Missing arguments are asked for interactively when stdin is a terminal.
Configuration is loaded from .filekit/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .filekit/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-dir", "", "Directory for run log files (empty disables)")

	// Add subcommands
	cmd.AddCommand(NewFixStateCommand())
	cmd.AddCommand(NewListDiffCommand())
	cmd.AddCommand(NewLsReportCommand())
	cmd.AddCommand(NewResizeCommand())

	return cmd
}
