package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/fire-protocols/internal/server"
	"github.com/jonathan/fire-protocols/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating protocols and looking up contracts.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: server.port from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := servePort
	if port == 0 {
		port = appConfig.Server.Port
	}

	srv := server.New(server.Options{
		Port:       port,
		ReportsDir: appConfig.ReportsDir,
		Generator:  newGenerator("", nil),
		Contracts:  contractStore(),
		History:    historyStore(),
		Scanner:    scanner(),
		Weather:    weatherSource(),
		RateLimit:  ratelimit.LoadConfig(),
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
