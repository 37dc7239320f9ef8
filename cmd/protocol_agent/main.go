// Package main provides the protocol_agent CLI for generating fire escape
// inspection protocols.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/config"
	"github.com/jonathan/fire-protocols/internal/logging"
	"github.com/jonathan/fire-protocols/internal/observability"
)

// configEnv names the config file when --config is not given.
const configEnv = "PROTOCOL_CONFIG"

var (
	configPath string
	verbose    bool
)

// Set by loadApp before any subcommand runs.
var (
	appConfig config.Config
	logger    = zap.NewNop()
	closeLog  func()
)

var rootCmd = &cobra.Command{
	Use:   "protocol_agent",
	Short: "Fire escape inspection protocol generator",
	Long: "protocol_agent produces inspection protocols (.docx) for vertical and stair fire escapes and roof fences, " +
		"keeps a cache of customer contracts and a history of generated reports, and serves the same over a REST API.",
	SilenceUsage:      true,
	PersistentPreRunE: loadApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (default: $"+configEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print intermediate results and debug logs")
}

func loadApp(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	l, closeFn, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Verbose: verbose})
	if err != nil {
		return err
	}
	closeApp()
	appConfig, logger, closeLog = cfg, l, closeFn
	return nil
}

func closeApp() {
	if closeLog != nil {
		closeLog()
		closeLog = nil
	}
	logger = zap.NewNop()
}

// printer returns the verbose-mode printer, or nil when not verbose.
func printer(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.OutOrStdout())
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
