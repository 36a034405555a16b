// Package main provides the portfolioctl operator CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"research-portfolio/internal/app"
	"research-portfolio/internal/config"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitConfigError = 2
)

// humanOutput switches from JSON to plain text output.
var humanOutput bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if humanOutput {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			_ = outputJSON(ErrorResponse{Error: err.Error()})
		}
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Operate the research portfolio from the command line",
	Long: `portfolioctl runs the portfolio's batch operations without the HTTP API:
PDF sync, reanalysis, theme consolidation, CSV import and maintenance.

Configuration is read from the same environment and .env file as the API server.
Output is JSON unless --human is given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
}

// configError marks failures to load configuration.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ce configError
	if errors.As(err, &ce) {
		return ExitConfigError
	}
	return ExitError
}

// loadConfig loads configuration and installs the logger. CLI logs go to
// stderr so stdout stays machine readable.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, configError{err}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	slog.SetDefault(slog.New(handler))
	return cfg, nil
}

// withApp runs fn with a fully wired App and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()
	return fn(ctx, a)
}
