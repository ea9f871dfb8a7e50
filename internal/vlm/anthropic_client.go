package vlm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/modelcfg"
)

// defaultAnthropicMaxTokens bounds generation when the endpoint config
// leaves max_tokens unset; the API requires an explicit value.
const defaultAnthropicMaxTokens = 4096

type anthropicCompleter struct {
	client anthropic.Client
	cfg    modelcfg.Config
}

func newAnthropicCompleter(cfg modelcfg.Config) *anthropicCompleter {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &anthropicCompleter{client: anthropic.NewClient(opts...), cfg: cfg}
}

func (c *anthropicCompleter) name() string {
	return string(modelcfg.ProviderAnthropic)
}

func (c *anthropicCompleter) complete(ctx context.Context, prompt string, jpegB64 string) (string, error) {
	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.ModelName),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(c.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/jpeg", jpegB64),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", faults.New(faults.ParseError, "vision model returned no text content")
	}
	return sb.String(), nil
}
