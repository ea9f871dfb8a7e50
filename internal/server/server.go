// Package server exposes the HTTP API surface. Every response is JSON;
// failures use the error envelope {error_kind, message} with the status
// derived from the fault kind.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/docuveil/docuveil/internal/config"
	"github.com/docuveil/docuveil/internal/document"
	"github.com/docuveil/docuveil/internal/hybrid"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/mcp"
	"github.com/docuveil/docuveil/internal/modelcfg"
	"github.com/docuveil/docuveil/internal/pipeline"
	"github.com/docuveil/docuveil/internal/redact"
	"github.com/docuveil/docuveil/internal/taxonomy"
)

// Server wires the stores and pipelines to HTTP handlers.
type Server struct {
	cfg *config.Config

	types     *taxonomy.Store
	models    *modelcfg.Store
	pipelines *pipeline.Store
	docs      *document.Store
	detector  *hybrid.Detector
	fuser     *pipeline.Fuser
	jobs      *redact.Orchestrator
	proxy     *mcp.Client
	monitor   *mcp.Monitor

	httpServer *http.Server
	log        *logger.Logger
}

// Deps bundles everything the server needs.
type Deps struct {
	Config    *config.Config
	Types     *taxonomy.Store
	Models    *modelcfg.Store
	Pipelines *pipeline.Store
	Docs      *document.Store
	Detector  *hybrid.Detector
	Fuser     *pipeline.Fuser
	Jobs      *redact.Orchestrator
	Proxy     *mcp.Client
	Monitor   *mcp.Monitor
	Logger    *logger.Logger
}

// New creates the server.
func New(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = logger.Get()
	}
	return &Server{
		cfg:       d.Config,
		types:     d.Types,
		models:    d.Models,
		pipelines: d.Pipelines,
		docs:      d.Docs,
		detector:  d.Detector,
		fuser:     d.Fuser,
		jobs:      d.Jobs,
		proxy:     d.Proxy,
		monitor:   d.Monitor,
		log:       log,
	}
}

// Handler builds the route table. API routes sit behind the bearer-auth
// middleware when an auth token is configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()

	api.HandleFunc("GET /api/v1/types", s.handleListTypes)
	api.HandleFunc("POST /api/v1/types", s.handleCreateType)
	api.HandleFunc("POST /api/v1/types/reset", s.handleResetTypes)
	api.HandleFunc("POST /api/v1/types/import", s.handleImportTypes)
	api.HandleFunc("GET /api/v1/types/{id}", s.handleGetType)
	api.HandleFunc("PUT /api/v1/types/{id}", s.handleUpdateType)
	api.HandleFunc("DELETE /api/v1/types/{id}", s.handleDeleteType)
	api.HandleFunc("POST /api/v1/types/{id}/toggle", s.handleToggleType)

	api.HandleFunc("GET /api/v1/models", s.handleListModels)
	api.HandleFunc("POST /api/v1/models", s.handlePutModel)
	api.HandleFunc("GET /api/v1/models/active", s.handleActiveModel)
	api.HandleFunc("PUT /api/v1/models/{id}", s.handlePutModel)
	api.HandleFunc("DELETE /api/v1/models/{id}", s.handleDeleteModel)
	api.HandleFunc("POST /api/v1/models/{id}/activate", s.handleActivateModel)

	api.HandleFunc("GET /api/v1/pipelines", s.handleListPipelines)
	api.HandleFunc("POST /api/v1/pipelines/reset", s.handleResetPipelines)
	api.HandleFunc("POST /api/v1/pipelines/{mode}/toggle", s.handleTogglePipeline)
	api.HandleFunc("GET /api/v1/pipelines/{mode}/types", s.handlePipelineTypes)
	api.HandleFunc("POST /api/v1/pipelines/{mode}/types", s.handleAddPipelineType)
	api.HandleFunc("PUT /api/v1/pipelines/{mode}/types/{id}", s.handleUpdatePipelineType)
	api.HandleFunc("DELETE /api/v1/pipelines/{mode}/types/{id}", s.handleDeletePipelineType)
	api.HandleFunc("POST /api/v1/pipelines/{mode}/types/{id}/toggle", s.handleTogglePipelineType)

	api.HandleFunc("POST /api/v1/files", s.handleUpload)
	api.HandleFunc("GET /api/v1/files", s.handleListFiles)
	api.HandleFunc("GET /api/v1/files/{id}", s.handleGetFile)
	api.HandleFunc("DELETE /api/v1/files/{id}", s.handleDeleteFile)
	api.HandleFunc("POST /api/v1/files/{id}/parse", s.handleParseFile)
	api.HandleFunc("GET /api/v1/files/{id}/pages/{page}", s.handlePageImage)
	api.HandleFunc("POST /api/v1/files/{id}/detect", s.handleDetectFile)
	api.HandleFunc("POST /api/v1/files/{id}/review", s.handleReview)
	api.HandleFunc("POST /api/v1/files/{id}/redact", s.handleRedact)
	api.HandleFunc("GET /api/v1/files/{id}/comparison", s.handleComparison)
	api.HandleFunc("GET /api/v1/files/{id}/download", s.handleDownload)

	api.HandleFunc("POST /api/v1/detect/text", s.handleDetectText)
	api.HandleFunc("POST /api/v1/detect/vision", s.handleDetectVision)

	mux.Handle("/api/", s.requireAuth(api))
	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields("addr", addr).Info("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]interface{}{"status": "ok"}
	if s.monitor != nil {
		payload["mcp_available"] = s.monitor.Available()
	}
	respondJSON(w, http.StatusOK, payload)
}
