package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalogd",
	Short: "Local-first inventory catalog service",
	Long:  "catalogd keeps products and categories in an on-device key-value store and serves them over a local HTTP API",
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
