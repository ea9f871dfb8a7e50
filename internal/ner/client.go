// Package ner talks to the hide-and-seek text recognizer over an
// OpenAI-compatible chat-completion endpoint. The model exposes four
// capabilities: ner (entity recognition), hide (tag substitution),
// pair (tag mapping extraction) and seek (restoration).
package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
)

const (
	// DefaultBaseURL is the local llama.cpp server endpoint
	DefaultBaseURL = "http://localhost:8080/v1"

	// DefaultModel is passed through to the server; llama.cpp serves a
	// single model and ignores the name
	DefaultModel = "has-0.6b"

	// DefaultTimeout bounds every recognizer round-trip
	DefaultTimeout = 120 * time.Second
)

// LegalEntityTypes are the Chinese category labels the recognizer was
// trained on for legal documents.
var LegalEntityTypes = []string{
	"人名", "组织", "地址", "职务",
	"联系方式", "身份证号", "银行卡号",
	"案件编号", "金额", "日期", "合同编号",
}

// Client is a synchronous recognizer client. It keeps an optional history
// mapping so that hide assigns the same tag to the same mention across
// successive chunks.
type Client struct {
	api     openai.Client
	baseURL string
	model   string
	timeout time.Duration
	logger  *logger.Logger

	mu      sync.Mutex
	history map[string][]string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL sets the chat-completion endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithModel sets the model name sent with each request
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout sets the per-call deadline
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient creates a recognizer client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		timeout: DefaultTimeout,
		logger:  logger.Get(),
		history: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.api = openai.NewClient(
		option.WithBaseURL(c.baseURL),
		option.WithAPIKey("not-needed"),
		option.WithMaxRetries(0),
	)
	return c
}

// ResetHistory clears the cross-chunk tag mapping. Call between documents.
func (c *Client) ResetHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = make(map[string][]string)
}

// History returns a copy of the accumulated tag mapping.
func (c *Client) History() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]string, len(c.history))
	for tag, values := range c.history {
		out[tag] = append([]string(nil), values...)
	}
	return out
}

// call performs one chat round-trip and returns the assistant content.
func (c *Client) call(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", faults.Wrap(faults.DeadlineExceeded, err, "recognizer call timed out after %s", c.timeout)
		}
		return "", faults.Wrap(faults.UpstreamUnavailable, err, "recognizer call failed")
	}
	if len(resp.Choices) == 0 {
		return "", faults.New(faults.ParseError, "recognizer returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Ner recognizes the given entity types in text and returns a map from
// type label to the mentions found.
func (c *Client) Ner(ctx context.Context, text string, entityTypes []string) (map[string][]string, error) {
	if text == "" {
		return map[string][]string{}, nil
	}
	types := entityTypes
	if len(types) == 0 {
		types = LegalEntityTypes
	}
	typesJSON, _ := json.Marshal(types)

	content, err := c.call(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(nerPrompt(string(typesJSON), text)),
	})
	if err != nil {
		return nil, err
	}

	result, err := parseMentionMap(content)
	if err != nil {
		c.logger.WithOperation("ner").WithFields("response", content).Debug("unparseable recognizer output")
		return nil, err
	}
	return result, nil
}

// Hide masks the recognized entities in text with structured tags. It runs
// ner first, echoes the result back as the assistant turn, then asks for
// the substitution. With useHistory, previously issued tags are pinned via
// the accumulated mapping. The returned mapping comes from a follow-up
// pair call and is merged into the history.
func (c *Client) Hide(ctx context.Context, text string, entityTypes []string, useHistory bool) (string, map[string][]string, error) {
	if text == "" {
		return "", map[string][]string{}, nil
	}
	types := entityTypes
	if len(types) == 0 {
		types = LegalEntityTypes
	}
	typesJSON, _ := json.Marshal(types)

	nerResult, err := c.Ner(ctx, text, types)
	if err != nil {
		return "", nil, err
	}
	if empty(nerResult) {
		return text, map[string][]string{}, nil
	}
	nerJSON, _ := json.Marshal(nerResult)

	instruction := "Replace the above-mentioned entity types in the text."
	if useHistory {
		c.mu.Lock()
		hasHistory := len(c.history) > 0
		historyJSON, _ := json.Marshal(c.history)
		c.mu.Unlock()
		if hasHistory {
			instruction = fmt.Sprintf("Replace the above-mentioned entity types in the text according to the existing mapping pairs:%s", historyJSON)
		}
	}

	masked, err := c.call(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(nerPrompt(string(typesJSON), text)),
		openai.AssistantMessage(string(nerJSON)),
		openai.UserMessage(instruction),
	})
	if err != nil {
		return "", nil, err
	}

	mapping, err := c.Pair(ctx, text, masked)
	if err != nil {
		// The masked text is still usable without a mapping.
		c.logger.WithOperation("hide").WithError(err).Warn("pair extraction failed")
		mapping = map[string][]string{}
	}

	c.mu.Lock()
	for tag, values := range mapping {
		for _, v := range values {
			if !contains(c.history[tag], v) {
				c.history[tag] = append(c.history[tag], v)
			}
		}
	}
	c.mu.Unlock()

	return masked, mapping, nil
}

// Pair extracts the tag-to-originals mapping between an original and its
// anonymized rendition.
func (c *Client) Pair(ctx context.Context, original, anonymized string) (map[string][]string, error) {
	content, err := c.call(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(fmt.Sprintf("<original>%s</original>\n<anonymized>%s</anonymized>\nExtract the mapping from anonymized entities to original entities.", original, anonymized)),
	})
	if err != nil {
		return nil, err
	}
	return parseMentionMap(content)
}

// Seek restores a masked text using the mapping. A nil mapping falls back
// to the accumulated history.
func (c *Client) Seek(ctx context.Context, masked string, mapping map[string][]string) (string, error) {
	use := mapping
	if len(use) == 0 {
		use = c.History()
	}
	if len(use) == 0 {
		return masked, nil
	}
	mappingJSON, _ := json.Marshal(use)

	return c.call(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(fmt.Sprintf("The mapping from anonymized entities to original entities:\n%s\nRestore the original text based on the above mapping:\n%s", mappingJSON, masked)),
	})
}

// Available probes the server's model listing with a short deadline.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func nerPrompt(typesJSON, text string) string {
	return fmt.Sprintf("Recognize the following entity types in the text.\nSpecified types:%s\n<text>%s</text>", typesJSON, text)
}

func empty(m map[string][]string) bool {
	for _, v := range m {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
