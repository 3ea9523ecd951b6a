package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellerdesk-dev/tellerdesk/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "tellerdesk",
		Short:   "Console banking ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tellerdesk.yaml", "path to the config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRunCommand(&configPath))

	return rootCmd
}
