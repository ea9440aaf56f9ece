package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookmarket",
	Short: "BookMarket API - book catalog and order service",
	Long: `BookMarket serves the book catalog, user accounts and order placement
over a JSON HTTP API.

Running the binary without a subcommand starts the server.`,
	RunE:         runServer,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
