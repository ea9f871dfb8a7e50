// Package config provides configuration management for the docuveil
// service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the docuveil service.
// Configuration precedence: CLI flags > Environment variables > Config file > Defaults
type Config struct {
	// Server is the HTTP surface configuration
	Server ServerConfig

	// DataDir is the root directory for uploads, outputs and stores
	DataDir string

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string

	// NER configures the local recognizer endpoint
	NER NERConfig

	// OCR configures the layout OCR microservice
	OCR OCRConfig

	// MCP configures the optional image-processing proxy
	MCP MCPConfig

	// VLM configures vision model calls
	VLM VLMConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Host to bind, empty for all interfaces
	Host string

	// Port to listen on
	Port int

	// AuthToken, when set, requires a matching bearer token on /api routes
	AuthToken string

	// MaxUploadBytes caps one uploaded file
	MaxUploadBytes int64
}

// NERConfig holds the recognizer client settings.
type NERConfig struct {
	// BaseURL of the OpenAI-compatible recognizer server
	BaseURL string

	// Model name to request
	Model string

	// Timeout for one recognizer round-trip
	Timeout time.Duration
}

// OCRConfig holds the OCR microservice client settings.
type OCRConfig struct {
	// Endpoint of the OCR service
	Endpoint string

	// Timeout for one extraction
	Timeout time.Duration
}

// MCPConfig holds the proxy client settings.
type MCPConfig struct {
	// Endpoint of the proxy, empty disables it
	Endpoint string

	// Enabled toggles the proxy path and its availability monitor
	Enabled bool
}

// VLMConfig holds vision model call settings.
type VLMConfig struct {
	// Timeout for one detection round-trip including generation
	Timeout time.Duration
}

// Load reads configuration from multiple sources and returns a Config
// instance. Sources are checked in this order: CLI flags > env vars >
// config file > defaults
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.SetConfigName(".docuveil")
			v.SetConfigType("yaml")
		}
	}

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("DOCUVEIL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	config := &Config{
		Server: ServerConfig{
			Host:           v.GetString("host"),
			Port:           v.GetInt("port"),
			AuthToken:      v.GetString("auth-token"),
			MaxUploadBytes: v.GetInt64("max-upload-bytes"),
		},
		DataDir:  v.GetString("data-dir"),
		LogLevel: v.GetString("log-level"),
		NER: NERConfig{
			BaseURL: v.GetString("ner-base-url"),
			Model:   v.GetString("ner-model"),
			Timeout: v.GetDuration("ner-timeout"),
		},
		OCR: OCRConfig{
			Endpoint: v.GetString("ocr-endpoint"),
			Timeout:  v.GetDuration("ocr-timeout"),
		},
		MCP: MCPConfig{
			Endpoint: v.GetString("mcp-endpoint"),
			Enabled:  v.GetBool("mcp-enabled"),
		},
		VLM: VLMConfig{
			Timeout: v.GetDuration("vlm-timeout"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	defaultDataDir := filepath.Join(home, ".docuveil")

	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("auth-token", "")
	v.SetDefault("max-upload-bytes", int64(50*1024*1024))
	v.SetDefault("data-dir", defaultDataDir)
	v.SetDefault("log-level", "info")

	v.SetDefault("ner-base-url", "http://localhost:8080/v1")
	v.SetDefault("ner-model", "has-0.6b")
	v.SetDefault("ner-timeout", 120*time.Second)

	v.SetDefault("ocr-endpoint", "http://localhost:8082")
	v.SetDefault("ocr-timeout", 60*time.Second)

	v.SetDefault("mcp-endpoint", "http://localhost:8100")
	v.SetDefault("mcp-enabled", true)

	v.SetDefault("vlm-timeout", 300*time.Second)
}

// Validate checks that the configuration is valid and internally consistent
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data-dir cannot be empty")
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to expand home directory in data-dir: %w", err)
		}
		c.DataDir = filepath.Join(home, c.DataDir[2:])
	}
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", c.DataDir, err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max-upload-bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log-level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if c.NER.BaseURL == "" {
		return fmt.Errorf("ner-base-url cannot be empty")
	}
	if c.NER.Model == "" {
		return fmt.Errorf("ner-model cannot be empty")
	}
	if c.OCR.Endpoint == "" {
		return fmt.Errorf("ocr-endpoint cannot be empty")
	}
	if c.MCP.Enabled && c.MCP.Endpoint == "" {
		return fmt.Errorf("mcp-endpoint cannot be empty when mcp-enabled is true")
	}

	for name, d := range map[string]time.Duration{
		"ner-timeout": c.NER.Timeout,
		"ocr-timeout": c.OCR.Timeout,
		"vlm-timeout": c.VLM.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	return nil
}

// Paths derived from the data dir.

// UploadDir is where uploaded documents land.
func (c *Config) UploadDir() string { return filepath.Join(c.DataDir, "uploads") }

// OutputDir is where redacted documents are written.
func (c *Config) OutputDir() string { return filepath.Join(c.DataDir, "outputs") }

// TypesFile persists entity type customizations.
func (c *Config) TypesFile() string { return filepath.Join(c.DataDir, "entity_types.json") }

// ModelsFile persists vision model endpoint configs.
func (c *Config) ModelsFile() string { return filepath.Join(c.DataDir, "models.json") }

// PipelinesFile persists pipeline configurations.
func (c *Config) PipelinesFile() string { return filepath.Join(c.DataDir, "pipelines.json") }

// JobsFile persists redaction job metadata.
func (c *Config) JobsFile() string { return filepath.Join(c.DataDir, "jobs.json") }

// String returns a string representation of the configuration (with
// sensitive data redacted)
func (c *Config) String() string {
	token := "not set"
	if c.Server.AuthToken != "" {
		token = "***"
	}

	return fmt.Sprintf(`Configuration:
  Server: %s:%d (auth: %s)
  DataDir: %s
  LogLevel: %s
  NER: %s model=%s timeout=%s
  OCR: %s timeout=%s
  MCP: %s enabled=%t
  VLM: timeout=%s`,
		c.Server.Host,
		c.Server.Port,
		token,
		c.DataDir,
		c.LogLevel,
		c.NER.BaseURL,
		c.NER.Model,
		c.NER.Timeout,
		c.OCR.Endpoint,
		c.OCR.Timeout,
		c.MCP.Endpoint,
		c.MCP.Enabled,
		c.VLM.Timeout,
	)
}
