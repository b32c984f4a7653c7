package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Loaded once at startup and
// passed explicitly; nothing reads the environment afterwards.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	ASF       ASFConfig       `mapstructure:"asf"`
	Imagga    ImaggaConfig    `mapstructure:"imagga"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// ASFConfig points at the SAR catalog search service.
type ASFConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// ImaggaConfig holds the vision service credentials. Missing credentials
// do not fail startup; the lookup endpoint rejects requests instead.
type ImaggaConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Timeout   int    `mapstructure:"timeout"`
}

// Configured reports whether both vision credentials are present.
func (c ImaggaConfig) Configured() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// OpenAIConfig holds the completion provider settings. A missing key only
// degrades explanations, it never blocks a request.
type OpenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("asf.base_url", "https://api.daac.asf.alaska.edu")
	v.SetDefault("asf.timeout", 15)
	v.SetDefault("imagga.base_url", "https://api.imagga.com")
	v.SetDefault("imagga.timeout", 20)
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 30)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: SARSCOPE_IMAGGA_API_KEY -> imagga.api_key
	v.SetEnvPrefix("SARSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are sane. Credentials are
// deliberately not required here: their absence is handled per request
// (Imagga) or as a degraded mode (OpenAI).
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.ASF.BaseURL == "" {
		errs = append(errs, "asf.base_url is required")
	}
	if c.ASF.Timeout <= 0 {
		errs = append(errs, "asf.timeout must be positive")
	}
	if c.Imagga.BaseURL == "" {
		errs = append(errs, "imagga.base_url is required")
	}
	if c.Imagga.Timeout <= 0 {
		errs = append(errs, "imagga.timeout must be positive")
	}
	if c.OpenAI.BaseURL == "" {
		errs = append(errs, "openai.base_url is required")
	}
	if c.OpenAI.Timeout <= 0 {
		errs = append(errs, "openai.timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
