package main

import (
	"github.com/docuveil/docuveil/internal/config"
	"github.com/docuveil/docuveil/internal/document"
	"github.com/docuveil/docuveil/internal/hybrid"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/matcher"
	"github.com/docuveil/docuveil/internal/mcp"
	"github.com/docuveil/docuveil/internal/modelcfg"
	"github.com/docuveil/docuveil/internal/ner"
	"github.com/docuveil/docuveil/internal/ocr"
	"github.com/docuveil/docuveil/internal/pipeline"
	"github.com/docuveil/docuveil/internal/redact"
	"github.com/docuveil/docuveil/internal/taxonomy"
	"github.com/docuveil/docuveil/internal/vision"
)

// components is the fully wired application graph.
type components struct {
	types     *taxonomy.Store
	models    *modelcfg.Store
	pipelines *pipeline.Store
	docs      *document.Store
	detector  *hybrid.Detector
	fuser     *pipeline.Fuser
	jobs      *redact.Orchestrator
	proxy     *mcp.Client
	monitor   *mcp.Monitor
}

// build constructs every component from the configuration. The proxy and
// its monitor stay nil when the sidecar is disabled; the vision pipeline
// then queries the model directly.
func build(cfg *config.Config, log *logger.Logger) (*components, error) {
	types, err := taxonomy.NewStore(cfg.TypesFile(), log)
	if err != nil {
		return nil, err
	}
	models, err := modelcfg.NewStore(cfg.ModelsFile())
	if err != nil {
		return nil, err
	}
	pipelines, err := pipeline.NewStore(cfg.PipelinesFile())
	if err != nil {
		return nil, err
	}
	docs, err := document.NewStore(cfg.UploadDir(), log)
	if err != nil {
		return nil, err
	}

	recognizer := ner.NewClient(
		ner.WithBaseURL(cfg.NER.BaseURL),
		ner.WithModel(cfg.NER.Model),
		ner.WithTimeout(cfg.NER.Timeout),
		ner.WithLogger(log),
	)
	detector := hybrid.New(recognizer, matcher.New(types), types, log)

	ocrClient := ocr.NewClient(
		ocr.WithEndpoint(cfg.OCR.Endpoint),
		ocr.WithTimeout(cfg.OCR.Timeout),
		ocr.WithLogger(log),
	)

	var proxy *mcp.Client
	var monitor *mcp.Monitor
	if cfg.MCP.Enabled {
		proxy = mcp.NewClient(mcp.WithEndpoint(cfg.MCP.Endpoint), mcp.WithLogger(log))
		monitor = mcp.NewMonitor(proxy, log)
	}

	ocrHas := vision.New(ocrClient, recognizer, log)
	glm := pipeline.NewGLMPipeline(models, proxy, monitor, log)
	fuser := pipeline.NewFuser(ocrHas, glm, pipelines, log)

	jobs, err := redact.NewOrchestrator(docs, detector, fuser, types, cfg.OutputDir(), cfg.JobsFile(), log)
	if err != nil {
		return nil, err
	}

	return &components{
		types:     types,
		models:    models,
		pipelines: pipelines,
		docs:      docs,
		detector:  detector,
		fuser:     fuser,
		jobs:      jobs,
		proxy:     proxy,
		monitor:   monitor,
	}, nil
}
