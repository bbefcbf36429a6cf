package main

import (
	"context"
	"fmt"
	"os"

	"launchboard-service/internal/infrastructure/bootstrap"
	"launchboard-service/internal/infrastructure/config"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	verbose bool
}

// app is opened by the root pre-run hook and closed once the command returns.
var app *bootstrap.App

var rootCmd = &cobra.Command{
	Use:   "launchctl",
	Short: "Browse spaceflight launches and manage favorites",
	Long: "launchctl reads the launch collection from the configured launch API\n" +
		"and keeps favorites in the same storage backend as the server.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: openApp,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log at debug level to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.Version = version
}

func openApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := "error"
	if rootFlags.verbose {
		level = "debug"
	}
	log := logger.NewLoggerWithLevel(level)

	// CLI runs are short-lived, so collectors stay off the default registry
	m := metrics.NewMetricsWith(nil, "launchctl")

	a, err := bootstrap.New(cmd.Context(), cfg, log, m)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if err := a.Service.Load(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, continuing with no favorites\n", err)
	}
	app = a
	return nil
}

func closeApp(ctx context.Context) error {
	if app == nil {
		return nil
	}
	err := app.Close(ctx)
	app = nil
	return err
}

func main() {
	err := rootCmd.Execute()
	if cerr := closeApp(context.Background()); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
