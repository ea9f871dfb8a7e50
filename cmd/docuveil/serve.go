package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the redaction service.

The server exposes the taxonomy, model and pipeline configuration, file
upload, detection, review, and redaction endpoints under /api/v1. It
shuts down gracefully on SIGTERM/SIGINT.

Examples:
  # Serve with defaults (port 8000)
  docuveil serve

  # Custom port via environment
  DOCUVEIL_PORT=9000 docuveil serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "address to bind (default all interfaces)")
	serveCmd.Flags().Int("port", 0, "port to listen on")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	log := logger.Get()
	defer func() { _ = log.Sync() }()
	log.Info(cfg.String())

	comps, err := build(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if comps.monitor != nil {
		go comps.monitor.Run(ctx)
	}

	srv := server.New(server.Deps{
		Config:    cfg,
		Types:     comps.types,
		Models:    comps.models,
		Pipelines: comps.pipelines,
		Docs:      comps.docs,
		Detector:  comps.detector,
		Fuser:     comps.fuser,
		Jobs:      comps.jobs,
		Proxy:     comps.proxy,
		Monitor:   comps.monitor,
		Logger:    log,
	})
	return srv.Run(ctx)
}
