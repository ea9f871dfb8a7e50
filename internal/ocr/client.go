// Package ocr is the HTTP client for the layout-aware OCR microservice.
// The service accepts a base64 image and returns text blocks with
// unit-coordinate boxes and semantic labels (text, title, seal, table).
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
)

const (
	// DefaultEndpoint is the default OCR service address
	DefaultEndpoint = "http://localhost:8082"

	// DefaultTimeout bounds one extraction round-trip. No retries happen
	// at this layer; upstream decides policy.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxNewTokens caps the service's generation length
	DefaultMaxNewTokens = 512
)

// Block labels emitted by the service.
const (
	LabelText  = "text"
	LabelTitle = "title"
	LabelSeal  = "seal"
	LabelTable = "table"
)

// Block is one recognized text region in unit coordinates on the
// submitted image.
type Block struct {
	// Text is the recognized content; seal regions carry a marker string
	Text string `json:"text"`

	// X, Y are the top-left corner in [0,1]
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Width and Height are the box size in [0,1]
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Confidence is the recognizer's score
	Confidence float64 `json:"confidence"`

	// Label is the semantic block type (text, title, seal, table)
	Label string `json:"label"`
}

// extractRequest is the /ocr request body.
type extractRequest struct {
	Image        string `json:"image"`
	MaxNewTokens int    `json:"max_new_tokens"`
}

// extractResponse is the /ocr response body.
type extractResponse struct {
	Boxes   []Block `json:"boxes"`
	Model   string  `json:"model"`
	Elapsed float64 `json:"elapsed"`
}

// healthResponse is the /health response body.
type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
	Ready  bool   `json:"ready"`
}

// Client is a stateless OCR service client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint sets the service address
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

// NewClient creates an OCR client
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

// Extract submits image bytes (PNG or JPEG, preferably EXIF-corrected by
// the caller) and returns the recognized blocks.
func (c *Client) Extract(ctx context.Context, imageBytes []byte, maxNewTokens int) ([]Block, error) {
	if maxNewTokens <= 0 {
		maxNewTokens = DefaultMaxNewTokens
	}

	reqBody, err := json.Marshal(extractRequest{
		Image:        base64.StdEncoding.EncodeToString(imageBytes),
		MaxNewTokens: maxNewTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/ocr", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, faults.Wrap(faults.DeadlineExceeded, err, "OCR extraction timed out")
		}
		return nil, faults.Wrap(faults.UpstreamUnavailable, err, "OCR service unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Wrap(faults.UpstreamUnavailable, err, "failed to read OCR response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, faults.New(faults.UpstreamUnavailable, "OCR service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed extractResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, faults.Wrap(faults.ParseError, err, "malformed OCR response")
	}

	c.logger.WithOperation("ocr.extract").Debugf("%d blocks from %s in %s", len(parsed.Boxes), parsed.Model, time.Since(start))
	return parsed.Boxes, nil
}

// Available probes the service health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
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
	return health.Ready
}
