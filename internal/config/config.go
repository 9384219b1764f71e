package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider drivers.
const (
	DriverGemini = "gemini"
	DriverOpenAI = "openai"
)

// Config holds the scenttwin configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Provider ProviderConfig `yaml:"provider"`
	Limits   LimitsConfig   `yaml:"limits"`
	Prompt   PromptConfig   `yaml:"prompt"`
	Auth     AuthConfig     `yaml:"auth"`
	MCP      MCPConfig      `yaml:"mcp"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ProviderConfig holds generative model settings.
type ProviderConfig struct {
	Driver     string `yaml:"driver"` // gemini, openai (default: gemini)
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
	// ThinkingBudget caps Gemini reasoning tokens; unset keeps the model default.
	ThinkingBudget *int32 `yaml:"thinking_budget"`
	// HealthProbe makes /health call the provider instead of only checking the key.
	HealthProbe bool `yaml:"health_probe"`
}

// LimitsConfig bounds result list sizes.
type LimitsConfig struct {
	SimilarPerfumes  int `yaml:"similar_perfumes"`
	NotesSuggestions int `yaml:"notes_suggestions"`
}

// PromptConfig holds instruction settings.
type PromptConfig struct {
	Language string `yaml:"language"` // pt-BR, en (default: pt-BR)
}

// MCPConfig holds Model Context Protocol settings.
type MCPConfig struct {
	// HTTPEnabled mounts the streamable MCP endpoint on the API server.
	HTTPEnabled bool `yaml:"http_enabled"`
}

// apiKeyEnv lists the variables consulted, in order, when provider.api_key is empty.
var apiKeyEnv = map[string][]string{
	DriverGemini: {"GEMINI_API_KEY", "API_KEY"},
	DriverOpenAI: {"OPENAI_API_KEY", "API_KEY"},
}

var defaultModels = map[string]string{
	DriverGemini: "gemini-2.5-flash",
	DriverOpenAI: "gpt-4o-mini",
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first; variables already set win.
func Load(env string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it and applies defaults and validation.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	cfg.applyAPIKeyFallback()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads the given .env files (default ".env"). Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Provider.Driver == "" {
		c.Provider.Driver = DriverGemini
	}
	if c.Provider.Model == "" {
		c.Provider.Model = defaultModels[c.Provider.Driver]
	}
	if c.Provider.TimeoutSec <= 0 {
		c.Provider.TimeoutSec = 30
	}
	// The write deadline must outlive the provider call.
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = c.Provider.TimeoutSec + 5
	}
	if c.Limits.SimilarPerfumes <= 0 {
		c.Limits.SimilarPerfumes = 5
	}
	if c.Limits.NotesSuggestions <= 0 {
		c.Limits.NotesSuggestions = 6
	}
	if c.Prompt.Language == "" {
		c.Prompt.Language = "pt-BR"
	}
}

func (c *Config) applyAPIKeyFallback() {
	if c.Provider.APIKey != "" {
		return
	}
	for _, name := range apiKeyEnv[c.Provider.Driver] {
		if v := os.Getenv(name); v != "" {
			c.Provider.APIKey = v
			return
		}
	}
}

// Validate checks the configuration for correctness.
// An empty provider key is allowed: the server starts and answers searches
// with a configuration error.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Provider.Driver {
	case DriverGemini, DriverOpenAI:
		// ok
	default:
		return fmt.Errorf("provider.driver must be %q or %q, got %q", DriverGemini, DriverOpenAI, c.Provider.Driver)
	}
	if c.Provider.Driver == DriverOpenAI && c.Provider.Model == "" {
		return fmt.Errorf("provider.model is required for the openai driver")
	}
	if c.Provider.ThinkingBudget != nil && *c.Provider.ThinkingBudget < -1 {
		return fmt.Errorf("provider.thinking_budget must be -1 (dynamic) or >= 0, got %d", *c.Provider.ThinkingBudget)
	}
	if c.Limits.SimilarPerfumes > 20 || c.Limits.NotesSuggestions > 20 {
		return fmt.Errorf("limits must not exceed 20")
	}
	switch c.Prompt.Language {
	case "pt-BR", "en":
		// ok
	default:
		return fmt.Errorf("prompt.language must be \"pt-BR\" or \"en\", got %q", c.Prompt.Language)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
