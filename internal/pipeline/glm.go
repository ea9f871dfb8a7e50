package pipeline

import (
	"context"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/mcp"
	"github.com/docuveil/docuveil/internal/modelcfg"
	"github.com/docuveil/docuveil/internal/vlm"
)

// GLMPipeline runs the vision model path. When the sidecar proxy is up it
// carries the call (server-side coordinate conversion is more reliable);
// otherwise the model is queried directly.
type GLMPipeline struct {
	models  *modelcfg.Store
	proxy   *mcp.Client
	monitor *mcp.Monitor
	log     *logger.Logger
}

// NewGLMPipeline creates the vision model pipeline. proxy and monitor may
// be nil to force direct mode.
func NewGLMPipeline(models *modelcfg.Store, proxy *mcp.Client, monitor *mcp.Monitor, log *logger.Logger) *GLMPipeline {
	if log == nil {
		log = logger.Get()
	}
	return &GLMPipeline{models: models, proxy: proxy, monitor: monitor, log: log}
}

// Detect returns unit-coordinate boxes for the enabled visual types.
func (p *GLMPipeline) Detect(ctx context.Context, image []byte, types []vlm.DetectType) ([]entity.BoundingBox, error) {
	cfg, err := p.models.Active()
	if err != nil {
		return nil, err
	}
	log := p.log.WithPipeline(string(ModeGLMVision))

	if p.proxy != nil && p.monitor != nil && p.monitor.Available() {
		result, err := p.proxy.Detect(ctx, image, types, cfg)
		if err == nil {
			return result.Boxes, nil
		}
		log.WithError(err).Warn("proxy detection failed, falling back to direct mode")
	}

	client, err := vlm.New(cfg, vlm.WithLogger(p.log))
	if err != nil {
		return nil, err
	}
	return client.Detect(ctx, image, types)
}
