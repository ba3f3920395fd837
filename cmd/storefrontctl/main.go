package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storefrontctl",
		Short: "Administrative tasks for the storefront catalogue",
		Long: `storefrontctl manages the storefront database.

Configuration is read from the same environment variables (and optional .env
file) as the server.

Examples:
  storefrontctl migrate                         # Apply pending schema migrations
  storefrontctl seed --file catalog.csv.gz      # Import a local seed file
  storefrontctl seed --file catalog.csv.gz --s3 # Try S3 first, then the local file`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	return rootCmd
}
