package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"runsheet/internal/analysis"
	"runsheet/internal/config"
	"runsheet/internal/port"
)

const systemPrompt = "You extract structured fields from oil and gas title documents and answer with JSON only."

// Provider implements port.AnalysisProvider using the OpenAI Chat Completions API.
type Provider struct {
	client *goopenai.Client
	model  string
}

// NewProvider creates an OpenAI-based analysis provider from a provider config.
// A BaseURL points the client at any OpenAI-compatible endpoint.
func NewProvider(cfg *config.ProviderConfig) *Provider {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.DefaultModel
	if model == "" {
		model = goopenai.GPT4oMini
	}
	return &Provider{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (p *Provider) Analyze(ctx context.Context, req port.AnalysisRequest) (*port.AnalysisOutput, error) {
	prompt := analysis.BuildRunsheetPrompt(req)

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: p.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, analysis.NewRateLimitError("openai", err, 0)
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, analysis.NewRateLimitError("openai", err, 0)
		}
		return nil, fmt.Errorf("calling openai API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}
	if resp.Choices[0].FinishReason == goopenai.FinishReasonLength {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	a, raw, err := analysis.DecodeAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &port.AnalysisOutput{
		Analysis:   a,
		Raw:        raw,
		ModelUsed:  p.model,
		PromptUsed: prompt,
	}, nil
}
