package commands

import (
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configPath is shared by every subcommand that needs the server config.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "cooler",
	Short: "Time tracking and invoicing for freelancers",
	Long: `cooler is the backend for a freelancer time tracking tool.
It exposes a GraphQL API over clients, projects, tasks and work sessions,
and computes budgets and balances from the hours you track.`,
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (env vars are used when omitted)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
