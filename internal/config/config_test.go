package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	// Set HOME to temp dir to avoid loading the user's ~/.docuveil.yaml
	t.Setenv("HOME", tmpDir)
	t.Setenv("DOCUVEIL_DATA_DIR", filepath.Join(tmpDir, "data"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected Port = 8000, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel = info, got %s", cfg.LogLevel)
	}
	if cfg.NER.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("expected default NER base URL, got %s", cfg.NER.BaseURL)
	}
	if cfg.NER.Timeout != 120*time.Second {
		t.Errorf("expected NER timeout = 120s, got %s", cfg.NER.Timeout)
	}
	if cfg.OCR.Timeout != 60*time.Second {
		t.Errorf("expected OCR timeout = 60s, got %s", cfg.OCR.Timeout)
	}
	if cfg.VLM.Timeout != 300*time.Second {
		t.Errorf("expected VLM timeout = 300s, got %s", cfg.VLM.Timeout)
	}
	if !cfg.MCP.Enabled {
		t.Error("expected MCP enabled by default")
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("HOME", tmpDir)
	t.Setenv("DOCUVEIL_DATA_DIR", filepath.Join(tmpDir, "data"))
	t.Setenv("DOCUVEIL_PORT", "9001")
	t.Setenv("DOCUVEIL_LOG_LEVEL", "debug")
	t.Setenv("DOCUVEIL_NER_MODEL", "has-1.8b")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("expected Port = 9001, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel = debug, got %s", cfg.LogLevel)
	}
	if cfg.NER.Model != "has-1.8b" {
		t.Errorf("expected NER model = has-1.8b, got %s", cfg.NER.Model)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
data-dir: ` + filepath.Join(tmpDir, "data") + `
port: 9002
log-level: warn
ocr-endpoint: http://ocr.internal:8082
mcp-enabled: false
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9002 {
		t.Errorf("expected Port = 9002, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel = warn, got %s", cfg.LogLevel)
	}
	if cfg.OCR.Endpoint != "http://ocr.internal:8082" {
		t.Errorf("expected OCR endpoint from file, got %s", cfg.OCR.Endpoint)
	}
	if cfg.MCP.Enabled {
		t.Error("expected MCP disabled from file")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig(t)
	cfg.LogLevel = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "invalid log-level") {
		t.Errorf("expected error about invalid log-level, got: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.Port = 70000

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for out-of-range port")
	}
	if !strings.Contains(err.Error(), "port must be between") {
		t.Errorf("expected error about port range, got: %v", err)
	}
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataDir = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for empty data-dir")
	}
	if !strings.Contains(err.Error(), "data-dir cannot be empty") {
		t.Errorf("expected error about empty data-dir, got: %v", err)
	}
}

func TestValidate_MCPEndpointRequired(t *testing.T) {
	cfg := validConfig(t)
	cfg.MCP.Enabled = true
	cfg.MCP.Endpoint = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for enabled MCP without endpoint")
	}
	if !strings.Contains(err.Error(), "mcp-endpoint cannot be empty") {
		t.Errorf("expected error about mcp-endpoint, got: %v", err)
	}
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	cfg := validConfig(t)
	cfg.NER.Timeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected validation error for zero timeout")
	}
	if !strings.Contains(err.Error(), "ner-timeout must be positive") {
		t.Errorf("expected error about ner-timeout, got: %v", err)
	}
}

func TestValidate_HomeDirectoryExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	cfg := validConfig(t)
	cfg.DataDir = "~/test-docuveil"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	expected := filepath.Join(home, "test-docuveil")
	if cfg.DataDir != expected {
		t.Errorf("expected DataDir = %s, got %s", expected, cfg.DataDir)
	}

	_ = os.RemoveAll(cfg.DataDir)
}

func TestString_RedactsAuthToken(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.AuthToken = "secret-token-12345"

	str := cfg.String()
	if strings.Contains(str, "secret-token-12345") {
		t.Error("String() should redact the auth token")
	}

	cfg.Server.AuthToken = ""
	if !strings.Contains(cfg.String(), "not set") {
		t.Error("String() should indicate the auth token is not set")
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := validConfig(t)

	if got := cfg.UploadDir(); got != filepath.Join(cfg.DataDir, "uploads") {
		t.Errorf("unexpected UploadDir: %s", got)
	}
	if got := cfg.OutputDir(); got != filepath.Join(cfg.DataDir, "outputs") {
		t.Errorf("unexpected OutputDir: %s", got)
	}
	if got := cfg.TypesFile(); got != filepath.Join(cfg.DataDir, "entity_types.json") {
		t.Errorf("unexpected TypesFile: %s", got)
	}
	if got := cfg.JobsFile(); got != filepath.Join(cfg.DataDir, "jobs.json") {
		t.Errorf("unexpected JobsFile: %s", got)
	}
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Server: ServerConfig{
			Port:           8000,
			MaxUploadBytes: 50 * 1024 * 1024,
		},
		DataDir:  t.TempDir(),
		LogLevel: "info",
		NER: NERConfig{
			BaseURL: "http://localhost:8080/v1",
			Model:   "has-0.6b",
			Timeout: 120 * time.Second,
		},
		OCR: OCRConfig{
			Endpoint: "http://localhost:8082",
			Timeout:  60 * time.Second,
		},
		MCP: MCPConfig{
			Endpoint: "http://localhost:8100",
			Enabled:  true,
		},
		VLM: VLMConfig{
			Timeout: 300 * time.Second,
		},
	}
}
