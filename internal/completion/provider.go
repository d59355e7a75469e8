package completion

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// New returns the client for cfg.Provider.
func New(cfg types.Config, log *zap.Logger) (Client, error) {
	switch normalizeProviderType(cfg.Provider) {
	case types.ProviderOpenAI, "openai-compatible", "github", "azure":
		return NewOpenAIClient(cfg, log)
	case types.ProviderAnthropic:
		return NewAnthropicClient(cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}
