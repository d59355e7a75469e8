// Config loading for the wordsmith CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "WORDSMITH"

	// envAPIKey overrides the variable named by token_env.
	envAPIKey = "WORDSMITH_API_KEY"

	cfgKeyDataDir        = "data_dir"
	cfgKeyProvider       = "provider"
	cfgKeyEndpoint       = "endpoint"
	cfgKeyModel          = "model"
	cfgKeyTokenEnv       = "token_env"
	cfgKeyRequestTimeout = "request_timeout"
	cfgKeyOutput         = "output"
	cfgKeyLessonFormat   = "lesson_format"
	cfgKeyLogMode        = "log.mode"
	cfgKeyLogLevel       = "log.level"

	defaultProvider       = types.ProviderOpenAI
	defaultEndpoint       = "https://models.inference.ai.azure.com"
	defaultModel          = "gpt-4o"
	defaultTokenEnv       = "GITHUB_TOKEN"
	defaultRequestTimeout = 60 * time.Second
	defaultOutput         = "lesson.html"
	defaultLogMode        = "development"
	defaultLogLevel       = "warn"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Wordsmith configuration

# Completion service: openai (any OpenAI-compatible endpoint) or anthropic.
provider: openai
endpoint: https://models.inference.ai.azure.com
model: gpt-4o

# Environment variable holding the bearer token. WORDSMITH_API_KEY wins
# when set.
token_env: GITHUB_TOKEN

request_timeout: 60s

# Lesson document path, and how lesson text is split: heuristic or delimited.
output: lesson.html
lesson_format: heuristic

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

log:
  mode: development
  level: warn

# Per-step sampling parameters.
# sampling:
#   words:    {temperature: 0.7, max_tokens: 100, top_p: 1.0}
#   patterns: {temperature: 0.7, max_tokens: 200, top_p: 1.0}
#   lesson:   {temperature: 0.7, max_tokens: 1500, top_p: 1.0}
#   review:   {temperature: 0.7, max_tokens: 300, top_p: 1.0}
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error. Environment variables prefixed WORDSMITH_ override file
// values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyProvider, defaultProvider)
	v.SetDefault(cfgKeyEndpoint, defaultEndpoint)
	v.SetDefault(cfgKeyModel, defaultModel)
	v.SetDefault(cfgKeyTokenEnv, defaultTokenEnv)
	v.SetDefault(cfgKeyRequestTimeout, defaultRequestTimeout)
	v.SetDefault(cfgKeyOutput, defaultOutput)
	v.SetDefault(cfgKeyLessonFormat, types.FormatHeuristic)
	v.SetDefault(cfgKeyLogMode, defaultLogMode)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	d := types.DefaultSampling()
	steps := map[string]types.Sampling{
		types.StepWords:    d.Words,
		types.StepPatterns: d.Patterns,
		types.StepLesson:   d.Lesson,
		types.StepReview:   d.Review,
	}
	for step, s := range steps {
		v.SetDefault("sampling."+step+".temperature", s.Temperature)
		v.SetDefault("sampling."+step+".max_tokens", s.MaxOutputTokens)
		v.SetDefault("sampling."+step+".top_p", s.TopP)
	}
}

// buildConfig decodes v into a validated types.Config and reads the API key
// from the environment.
func buildConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.LessonFormat = strings.ToLower(strings.TrimSpace(cfg.LessonFormat))
	cfg.APIKey = apiKey(v.GetString(cfgKeyTokenEnv))

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// apiKey returns WORDSMITH_API_KEY when set, otherwise the value of the
// variable named tokenEnv.
func apiKey(tokenEnv string) string {
	if key := strings.TrimSpace(os.Getenv(envAPIKey)); key != "" {
		return key
	}
	if tokenEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(tokenEnv))
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
