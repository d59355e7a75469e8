// Package completion adapts hosted language models to a single synchronous
// call: send a system and user message with sampling parameters, get back
// the text of the first choice.
//
// Two providers are supported. OpenAIClient speaks the OpenAI chat
// completions API and works with any compatible endpoint (GitHub Models,
// Azure AI inference, local gateways). AnthropicClient speaks the Anthropic
// messages API. Neither retries; a failed call returns an error wrapping
// ErrService.
package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// Client generates text for a system and user prompt pair.
type Client interface {
	// Complete returns the whitespace-trimmed text of the first completion
	// choice. Errors wrap ErrService.
	Complete(ctx context.Context, system, user string, sampling types.Sampling) (string, error)
}

// Common errors returned by the completion package.
var (
	// ErrService is wrapped by every failure of a remote completion call:
	// transport, authentication, timeout, or a malformed response.
	ErrService = errors.New("completion service error")

	// ErrNoChoices is returned when the response carries no usable choice.
	ErrNoChoices = errors.New("response contained no choices")

	// ErrInvalidConfig is returned when a client cannot be built from the
	// given configuration.
	ErrInvalidConfig = errors.New("invalid completion configuration")
)

// serviceErr wraps err with ErrService and the provider name.
func serviceErr(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrService, provider, err)
}
