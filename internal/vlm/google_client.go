package vlm

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/modelcfg"
)

// googleCompleter builds its client per call; the genai SDK wants a
// context at construction time.
type googleCompleter struct {
	cfg modelcfg.Config
}

func newGoogleCompleter(cfg modelcfg.Config) *googleCompleter {
	return &googleCompleter{cfg: cfg}
}

func (c *googleCompleter) name() string {
	return string(modelcfg.ProviderGoogle)
}

func (c *googleCompleter) complete(ctx context.Context, prompt string, jpegB64 string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return "", faults.Wrap(faults.UpstreamUnavailable, err, "failed to create Gemini client")
	}
	defer client.Close()

	model := client.GenerativeModel(c.cfg.ModelName)
	model.SetTemperature(float32(c.cfg.Temperature))
	if c.cfg.TopP > 0 {
		model.SetTopP(float32(c.cfg.TopP))
	}
	if c.cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.cfg.MaxTokens))
	}
	model.ResponseMIMEType = "application/json"

	raw, err := base64.StdEncoding.DecodeString(jpegB64)
	if err != nil {
		return "", faults.Wrap(faults.Internal, err, "bad image payload")
	}

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", raw), genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", faults.New(faults.ParseError, "vision model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", faults.New(faults.ParseError, "vision model returned no text content")
	}
	return sb.String(), nil
}
