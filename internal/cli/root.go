package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "bootstrap",
	Short:        "Pick, fetch and serve userflow.js builds",
	Long:         "Classifies user agents into es2020 or legacy builds, shows which URL a browser would load, fetches it the way the bootstrap does, and serves builds over HTTP.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
