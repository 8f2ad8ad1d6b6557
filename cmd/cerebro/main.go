// Package main provides the entry point for the cerebro CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/cerebro/internal/app"
)

var (
	version = "0.1.0-dev"

	globalOpts app.Options
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cerebro: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cerebro",
		Short:         "Browse the Marvel character catalog from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), globalOpts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigPath, "config", "", "config file (default ~/.config/cerebro/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.PrefsPath, "prefs", "", "preferences file (default ~/.config/cerebro/prefs.toml)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Debug, "debug", false, "log every catalog request")

	rootCmd.AddCommand(
		newSearchCmd(),
		newShowCmd(),
	)

	return rootCmd
}

// withSession opens a session for a one-shot command and closes it after fn.
func withSession(fn func(s *app.Session) error) error {
	session, err := app.Open(globalOpts)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()
	return fn(session)
}
