package vlm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/modelcfg"
)

// zhipuBaseURL is the hosted GLM endpoint, OpenAI-compatible.
const zhipuBaseURL = "https://open.bigmodel.cn/api/paas/v4"

const systemPrompt = "你是一个专业的文档分析助手。请始终使用中文回复。"

// openaiCompleter speaks the OpenAI chat completions protocol. It covers
// the local llama-server, Zhipu and any custom compatible endpoint.
type openaiCompleter struct {
	client openai.Client
	cfg    modelcfg.Config
}

func newOpenAICompleter(cfg modelcfg.Config) *openaiCompleter {
	baseURL := cfg.BaseURL
	if baseURL == "" && cfg.Provider == modelcfg.ProviderZhipu {
		baseURL = zhipuBaseURL
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		// Local servers ignore the key but the SDK requires one.
		apiKey = "not-needed"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openaiCompleter{client: openai.NewClient(opts...), cfg: cfg}
}

func (c *openaiCompleter) name() string {
	return string(c.cfg.Provider)
}

func (c *openaiCompleter) complete(ctx context.Context, prompt string, jpegB64 string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.cfg.ModelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:image/jpeg;base64," + jpegB64,
				}),
				openai.TextContentPart(prompt),
			}),
		},
		Temperature: openai.Float(c.cfg.Temperature),
		TopP:        openai.Float(c.cfg.TopP),
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.cfg.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", faults.New(faults.ParseError, "vision model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
