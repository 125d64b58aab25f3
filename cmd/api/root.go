package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hellodemo/internal/config"
	"hellodemo/internal/logging"
)

var logLevel string

// rootCmd serves the API when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hellodemo",
	Short: "Greets with the number of temp_table rows owned by uid 2",
	Long: `hellodemo exposes GET /hello/hello, which answers "hello" followed by the
row count of temp_table for uid 2. Configuration comes from the environment
(a .env file in the working directory is loaded when present).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// loggedError marks an error the command already wrote to the structured log.
type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

// logged wraps err so Execute does not print it a second time.
func logged(err error) error { return loggedError{err: err} }

// reportError prints errors that were not logged yet, such as cobra usage errors.
func reportError(w io.Writer, err error) {
	var le loggedError
	if errors.As(err, &le) {
		return
	}
	fmt.Fprintln(w, err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
}

// loadConfig reads the environment and builds the process logger from it.
func loadConfig() (*config.AppConfig, *logrus.Logger) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logging.New(os.Stdout, cfg.LogLevel, cfg.Location())
}
