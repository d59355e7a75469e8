package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// AnthropicClient calls the Anthropic messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
	log    *zap.Logger
}

var _ Client = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client using cfg.APIKey. An empty endpoint
// uses the Anthropic default.
func NewAnthropicClient(cfg types.Config, log *zap.Logger) (*AnthropicClient, error) {
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

	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		model:  model,
		log:    log.With(zap.String("provider", types.ProviderAnthropic), zap.String("model", model)),
	}, nil
}

// Complete sends one message request and joins the text blocks of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, system, user string, sampling types.Sampling) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: sampling.MaxOutputTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
		Temperature: anthropic.Float(sampling.Temperature),
	}
	// Newer models reject temperature and top_p together; 1.0 is the API default.
	if sampling.TopP > 0 && sampling.TopP < 1 {
		params.TopP = anthropic.Float(sampling.TopP)
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.Warn("completion request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", serviceErr(types.ProviderAnthropic, err)
	}

	var sb strings.Builder
	found := false
	for _, block := range msg.Content {
		if block.Type != "text" {
			continue
		}
		found = true
		sb.WriteString(block.Text)
	}
	if !found {
		return "", serviceErr(types.ProviderAnthropic, ErrNoChoices)
	}

	text := strings.TrimSpace(sb.String())
	c.log.Debug("completion received",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)),
		zap.String("stop_reason", string(msg.StopReason)))
	return text, nil
}
