// Package vlm detects sensitive regions on document images with a vision
// language model. Providers differ only in transport; the prompt, the JSON
// recovery and the coordinate reconciliation are shared.
package vlm

import (
	"context"
	"fmt"
	"time"

	"github.com/docuveil/docuveil/internal/coords"
	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/modelcfg"
)

// DefaultTimeout bounds one detection round-trip including generation.
const DefaultTimeout = 300 * time.Second

// vlmConfidence is assigned to model-detected regions, which carry no
// usable score of their own.
const vlmConfidence = 0.9

// DetectType describes one region category the model should look for.
type DetectType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Examples    string `json:"examples,omitempty"`
}

// Detector locates sensitive regions on an image.
type Detector interface {
	// Detect returns bounding boxes in unit coordinates on the input image.
	Detect(ctx context.Context, image []byte, types []DetectType) ([]entity.BoundingBox, error)
}

// completer is the provider-specific half: send one prompt with one JPEG
// image and return the model's text answer.
type completer interface {
	complete(ctx context.Context, prompt string, jpegB64 string) (string, error)
	name() string
}

// Client runs detection against one configured model endpoint.
type Client struct {
	cfg  modelcfg.Config
	api  completer
	log  *logger.Logger
	wait time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-call deadline
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.wait = timeout
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a detector for the given endpoint configuration.
func New(cfg modelcfg.Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg:  cfg,
		log:  logger.Get(),
		wait: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch cfg.Provider {
	case modelcfg.ProviderLocal, modelcfg.ProviderZhipu, modelcfg.ProviderOpenAI, modelcfg.ProviderCustom:
		c.api = newOpenAICompleter(cfg)
	case modelcfg.ProviderAnthropic:
		c.api = newAnthropicCompleter(cfg)
	case modelcfg.ProviderGoogle:
		c.api = newGoogleCompleter(cfg)
	default:
		return nil, faults.New(faults.InvalidInput, "unknown vision provider %q", cfg.Provider)
	}
	return c, nil
}

// Detect preprocesses the image, queries the model and reconciles the
// returned coordinates to unit boxes on the submitted image. A response
// that yields no parseable objects is an empty detection, not an error.
func (c *Client) Detect(ctx context.Context, image []byte, types []DetectType) ([]entity.BoundingBox, error) {
	ctx, cancel := context.WithTimeout(ctx, c.wait)
	defer cancel()

	log := c.log.WithOperation("vlm.detect").WithFields("provider", c.api.name(), "model", c.cfg.ModelName)

	jpegB64, width, height, err := preprocess(image)
	if err != nil {
		return nil, faults.Wrap(faults.InvalidInput, err, "cannot decode image")
	}

	start := time.Now()
	text, err := c.api.complete(ctx, buildPrompt(types), jpegB64)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, faults.Wrap(faults.DeadlineExceeded, err, "vision detection timed out")
		}
		if faults.KindOf(err) != faults.Internal {
			return nil, err
		}
		return nil, faults.Wrap(faults.UpstreamUnavailable, err, "vision model request failed")
	}

	objects := parseObjects(text)
	if len(objects) == 0 {
		log.Warnf("no objects recovered from %d-char response", len(text))
		return nil, nil
	}

	raw := make([]coords.Raw, 0, len(objects))
	for _, obj := range objects {
		raw = append(raw, coords.Raw{X1: obj.Box[0], Y1: obj.Box[1], X2: obj.Box[2], Y2: obj.Box[3]})
	}
	rects, kept, convention := coords.Normalize(raw, width, height, c.log)

	boxes := make([]entity.BoundingBox, 0, len(rects))
	j := 0
	for i, obj := range objects {
		if !kept[i] {
			continue
		}
		r := rects[j]
		j++
		boxes = append(boxes, entity.BoundingBox{
			ID:         fmt.Sprintf("glm_%d", len(boxes)),
			X:          r.X,
			Y:          r.Y,
			Width:      r.W,
			Height:     r.H,
			Page:       1,
			Type:       NormalizeType(obj.Type),
			Text:       obj.Text,
			Confidence: vlmConfidence,
			Selected:   true,
			Source:     entity.BoxSourceVLM,
		})
	}

	log.Infof("%d regions via %s in %s", len(boxes), convention, time.Since(start))
	return boxes, nil
}
