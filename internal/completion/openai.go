package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
	log    *zap.Logger
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client for cfg.Endpoint using cfg.APIKey as the
// bearer credential. An empty endpoint uses the OpenAI default.
func NewOpenAIClient(cfg types.Config, log *zap.Logger) (*OpenAIClient, error) {
	if log == nil {
		log = zap.NewNop()
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is empty", ErrInvalidConfig)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("%w: model is empty", ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if endpoint := normalizeEndpoint(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
		log:    log.With(zap.String("provider", types.ProviderOpenAI), zap.String("model", model)),
	}, nil
}

// Complete sends one chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, sampling types.Sampling) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(sampling.Temperature),
		TopP:        openai.Float(sampling.TopP),
	}
	if sampling.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(sampling.MaxOutputTokens)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.log.Warn("completion request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", serviceErr(types.ProviderOpenAI, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", serviceErr(types.ProviderOpenAI, ErrNoChoices)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug("completion received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)))
	return text, nil
}

// normalizeEndpoint trims the endpoint and ensures a trailing slash so the
// SDK resolves "chat/completions" beneath it.
func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return ""
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return endpoint
}
