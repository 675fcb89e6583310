// Package config loads bannercopy settings from defaults, an optional TOML
// file, a .env file and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variable names.
const (
	EnvLogLevel       = "BANNERCOPY_LOG_LEVEL"
	EnvOCRLanguages   = "BANNERCOPY_OCR_LANGUAGES"
	EnvTessdataPrefix = "BANNERCOPY_TESSDATA_PREFIX"
	EnvOCRWorkers     = "BANNERCOPY_OCR_WORKERS"
	EnvOCRTimeoutSec  = "BANNERCOPY_OCR_TIMEOUT_SEC"
	EnvSegmentLabel   = "BANNERCOPY_SEGMENT_LABEL"
	EnvPreprocess     = "BANNERCOPY_PREPROCESS"
	EnvLLMProvider    = "BANNERCOPY_LLM_PROVIDER"
	EnvLLMModel       = "BANNERCOPY_LLM_MODEL"
	EnvLLMBaseURL     = "BANNERCOPY_LLM_BASE_URL"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvAnthropicKey   = "ANTHROPIC_API_KEY"
	EnvConfigFile     = "BANNERCOPY_CONFIG"
)

// Provider names accepted in LLMConfig.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default model per provider.
var DefaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4.1-nano",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	LogLevel string    `toml:"log_level"`
	OCR      OCRConfig `toml:"ocr"`
	LLM      LLMConfig `toml:"llm"`

	// Sources lists the files that contributed to this configuration.
	Sources []string `toml:"-"`
}

// OCRConfig configures strip recognition.
type OCRConfig struct {
	Languages      []string `toml:"languages"`
	TessdataPrefix string   `toml:"tessdata_prefix"`
	Workers        int      `toml:"workers"`
	TimeoutSec     int      `toml:"timeout_sec"`
	SegmentLabel   string   `toml:"segment_label"`
	Preprocess     bool     `toml:"preprocess"`
}

// LLMConfig configures the chat-completion backend.
type LLMConfig struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model"`
	BaseURL      string `toml:"base_url"`
	OpenAIKey    string `toml:"openai_api_key"`
	AnthropicKey string `toml:"anthropic_api_key"`
}

// APIKey returns the key for the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicKey
	}
	return c.OpenAIKey
}

// Enabled reports whether a key is configured for the selected provider.
func (c LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey()) != ""
}

// Debug reports whether debug logging is requested.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// LoadOptions overrides where configuration is read from.
type LoadOptions struct {
	// ConfigFile is a TOML file path. Empty falls back to BANNERCOPY_CONFIG.
	ConfigFile string

	// EnvFile is a .env path. Empty looks for .env in the working directory
	// and then next to the executable.
	EnvFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		OCR: OCRConfig{
			Languages:  []string{"kor", "eng"},
			Workers:    1,
			TimeoutSec: 60,
			Preprocess: true,
		},
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
		},
	}
}

// Load builds the configuration.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}
	if configFile != "" {
		if err := cfg.mergeTOML(configFile); err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, configFile)
	}

	// godotenv never overrides variables already set in the environment.
	if envFile := resolveEnvPath(opts.EnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		cfg.Sources = append(cfg.Sources, envFile)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModels[cfg.LLM.Provider]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.OCR.Workers < 1 {
		return fmt.Errorf("%w: ocr workers must be >= 1, got %d", ErrInvalidConfig, c.OCR.Workers)
	}
	if c.OCR.TimeoutSec < 0 {
		return fmt.Errorf("%w: ocr timeout must be >= 0, got %d", ErrInvalidConfig, c.OCR.TimeoutSec)
	}
	if len(c.OCR.Languages) == 0 {
		return fmt.Errorf("%w: at least one OCR language is required", ErrInvalidConfig)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, c.LLM.Provider)
	}
	return nil
}

func (c *Config) mergeTOML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvOCRLanguages); v != "" {
		c.OCR.Languages = splitList(v)
	}
	if v := os.Getenv(EnvTessdataPrefix); v != "" {
		c.OCR.TessdataPrefix = v
	}
	if v := os.Getenv(EnvSegmentLabel); v != "" {
		c.OCR.SegmentLabel = v
	}
	if err := envInt(EnvOCRWorkers, &c.OCR.Workers); err != nil {
		return err
	}
	if err := envInt(EnvOCRTimeoutSec, &c.OCR.TimeoutSec); err != nil {
		return err
	}
	if v := os.Getenv(EnvPreprocess); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvPreprocess, v)
		}
		c.OCR.Preprocess = b
	}
	if v := os.Getenv(EnvLLMProvider); v != "" {
		c.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(EnvLLMBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		c.LLM.OpenAIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvAnthropicKey); v != "" {
		c.LLM.AnthropicKey = strings.TrimSpace(v)
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '+' }) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolveEnvPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}
	return ""
}

// RedactKey masks an API key, leaving first/last 4 chars: xxxx...yyyy
func RedactKey(k string) string {
	if k == "" {
		return "(unset)"
	}
	if len(k) <= 8 {
		return "********"
	}
	return fmt.Sprintf("%s...%s", k[:4], k[len(k)-4:])
}
