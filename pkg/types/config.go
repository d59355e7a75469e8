package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Supported completion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Supported lesson output formats. FormatHeuristic locates the question
// block by searching for the word "question"; FormatDelimited asks the
// model for an explicit delimiter line and splits on it.
const (
	FormatHeuristic = "heuristic"
	FormatDelimited = "delimited"
)

// Sampling steps. Each pipeline step carries its own sampling parameters.
const (
	StepWords    = "words"
	StepPatterns = "patterns"
	StepLesson   = "lesson"
	StepReview   = "review"
)

// Sampling holds the sampling parameters sent with one completion request.
type Sampling struct {
	Temperature     float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int64   `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens" validate:"gt=0"`
	TopP            float64 `json:"top_p" yaml:"top_p" mapstructure:"top_p" validate:"gte=0,lte=1"`
}

// SamplingConfig groups the per-step sampling parameters.
type SamplingConfig struct {
	Words    Sampling `json:"words" yaml:"words" mapstructure:"words"`
	Patterns Sampling `json:"patterns" yaml:"patterns" mapstructure:"patterns"`
	Lesson   Sampling `json:"lesson" yaml:"lesson" mapstructure:"lesson"`
	Review   Sampling `json:"review" yaml:"review" mapstructure:"review"`
}

// DefaultSampling returns the sampling parameters the lesson steps use when
// the configuration does not override them.
func DefaultSampling() SamplingConfig {
	return SamplingConfig{
		Words:    Sampling{Temperature: 0.7, MaxOutputTokens: 100, TopP: 1.0},
		Patterns: Sampling{Temperature: 0.7, MaxOutputTokens: 200, TopP: 1.0},
		Lesson:   Sampling{Temperature: 0.7, MaxOutputTokens: 1500, TopP: 1.0},
		Review:   Sampling{Temperature: 0.7, MaxOutputTokens: 300, TopP: 1.0},
	}
}

// Config holds the store location and the completion service settings.
type Config struct {
	DataDir        string         `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	Provider       string         `json:"provider" yaml:"provider" mapstructure:"provider"`
	Endpoint       string         `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	Model          string         `json:"model" yaml:"model" mapstructure:"model"`
	APIKey         string         `json:"-" yaml:"-" mapstructure:"-"`
	RequestTimeout time.Duration  `json:"request_timeout" yaml:"request_timeout" mapstructure:"request_timeout" validate:"gte=0"`
	LessonFormat   string         `json:"lesson_format" yaml:"lesson_format" mapstructure:"lesson_format"`
	Sampling       SamplingConfig `json:"sampling" yaml:"sampling" mapstructure:"sampling"`
}

// Config validation errors.
var (
	ErrProviderEmpty   = errors.New("provider must not be empty")
	ErrProviderUnknown = errors.New("unknown provider")
	ErrModelEmpty      = errors.New("model must not be empty")
	ErrFormatUnknown   = errors.New("unknown lesson format")
	ErrConfigInvalid   = errors.New("invalid configuration")
)

var knownProviders = map[string]bool{
	ProviderOpenAI:    true,
	ProviderAnthropic: true,
}

var knownFormats = map[string]bool{
	FormatHeuristic: true,
	FormatDelimited: true,
}

var validate = validator.New()

// Validate checks that the Config is well-formed. Enumerated fields return a
// sentinel error from this package; range checks on numeric fields are
// reported wrapped in ErrConfigInvalid.
func (c Config) Validate() error {
	if c.Provider == "" {
		return ErrProviderEmpty
	}
	if !knownProviders[c.Provider] {
		return fmt.Errorf("%w: %q", ErrProviderUnknown, c.Provider)
	}
	if c.Model == "" {
		return ErrModelEmpty
	}
	if c.LessonFormat != "" && !knownFormats[c.LessonFormat] {
		return fmt.Errorf("%w: %q", ErrFormatUnknown, c.LessonFormat)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// SamplingFor returns the sampling parameters configured for step. Unknown
// steps get the lesson parameters.
func (c Config) SamplingFor(step string) Sampling {
	switch step {
	case StepWords:
		return c.Sampling.Words
	case StepPatterns:
		return c.Sampling.Patterns
	case StepReview:
		return c.Sampling.Review
	default:
		return c.Sampling.Lesson
	}
}
