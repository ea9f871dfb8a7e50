// Package mcp is the client for the sidecar image-processing proxy. The
// proxy owns the hosted vision API call, converts coordinates to unit
// boxes server-side and renders annotated previews. It is optional: a
// background monitor tracks availability so callers can fall back to the
// direct vision path without paying a probe per request.
package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docuveil/docuveil/internal/entity"
	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/modelcfg"
	"github.com/docuveil/docuveil/internal/vlm"
)

const (
	// DefaultEndpoint is the default proxy address
	DefaultEndpoint = "http://localhost:8100"

	// DefaultTimeout bounds detect and draw calls
	DefaultTimeout = 300 * time.Second

	// HealthTimeout bounds one availability probe
	HealthTimeout = 2 * time.Second
)

// detectRequest is the /mcp/detect body.
type detectRequest struct {
	ImageBase64    string           `json:"image_base64"`
	DetectTypes    []vlm.DetectType `json:"detect_types"`
	Provider       string           `json:"provider"`
	APIKey         string           `json:"api_key,omitempty"`
	ModelName      string           `json:"model_name"`
	Temperature    float64          `json:"temperature"`
	TopP           float64          `json:"top_p"`
	MaxTokens      int              `json:"max_tokens"`
	EnableThinking bool             `json:"enable_thinking"`
}

// DetectResult is the /mcp/detect response. Boxes are unit coordinates
// on the original image.
type DetectResult struct {
	Boxes       []entity.BoundingBox `json:"boxes"`
	ImageWidth  int                  `json:"image_width"`
	ImageHeight int                  `json:"image_height"`
	Elapsed     float64              `json:"elapsed"`
}

// drawRequest is the /mcp/draw body.
type drawRequest struct {
	ImageBase64 string               `json:"image_base64"`
	Boxes       []entity.BoundingBox `json:"boxes"`
}

// drawResponse is the /mcp/draw response.
type drawResponse struct {
	ResultImage string  `json:"result_image"`
	BoxCount    int     `json:"box_count"`
	Elapsed     float64 `json:"elapsed"`
}

// healthResponse is the /health response.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Client talks to one proxy instance.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint sets the proxy address
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient creates a proxy client
func NewClient(opts ...Option) *Client {
	client := &Client{
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger.Get(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Detect submits an image for detection through the proxy. The model
// endpoint configuration travels with the request; the proxy holds no
// credentials of its own.
func (c *Client) Detect(ctx context.Context, image []byte, types []vlm.DetectType, cfg modelcfg.Config) (*DetectResult, error) {
	req := detectRequest{
		ImageBase64:    base64.StdEncoding.EncodeToString(image),
		DetectTypes:    types,
		Provider:       string(cfg.Provider),
		APIKey:         cfg.APIKey,
		ModelName:      cfg.ModelName,
		Temperature:    cfg.Temperature,
		TopP:           cfg.TopP,
		MaxTokens:      cfg.MaxTokens,
		EnableThinking: cfg.EnableThinking,
	}

	var result DetectResult
	if err := c.post(ctx, "/mcp/detect", req, &result); err != nil {
		return nil, err
	}
	for i := range result.Boxes {
		result.Boxes[i].Page = 1
		result.Boxes[i].Selected = true
		result.Boxes[i].Source = entity.BoxSourceVLM
	}
	c.logger.WithOperation("mcp.detect").Debugf("%d boxes on %dx%d in %.2fs",
		len(result.Boxes), result.ImageWidth, result.ImageHeight, result.Elapsed)
	return &result, nil
}

// Draw renders the boxes onto the image and returns the annotated PNG.
func (c *Client) Draw(ctx context.Context, image []byte, boxes []entity.BoundingBox) ([]byte, error) {
	req := drawRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Boxes:       boxes,
	}

	var resp drawResponse
	if err := c.post(ctx, "/mcp/draw", req, &resp); err != nil {
		return nil, err
	}
	out, err := base64.StdEncoding.DecodeString(resp.ResultImage)
	if err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "malformed annotated image")
	}
	return out, nil
}

// Available probes the health endpoint once.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "ok"
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	reqBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal proxy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return faults.Wrap(faults.DeadlineExceeded, err, "proxy call timed out")
		}
		return faults.Wrap(faults.UpstreamUnavailable, err, "proxy unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return faults.Wrap(faults.UpstreamUnavailable, err, "failed to read proxy response")
	}
	if resp.StatusCode != http.StatusOK {
		return faults.New(faults.UpstreamUnavailable, "proxy returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return faults.Wrap(faults.ParseError, err, "malformed proxy response")
	}
	return nil
}
