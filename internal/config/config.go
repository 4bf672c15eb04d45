package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runner configuration
type Config struct {
	BaseURL                string            `yaml:"base_url"`
	TimeoutSeconds         float64           `yaml:"timeout_seconds"`          // Per-request cap
	MaxResponseTimeSeconds float64           `yaml:"max_response_time_seconds"` // Latency pass threshold
	LogDir                 string            `yaml:"log_dir"`
	ReportDir              string            `yaml:"report_dir"`
	ReportFormat           string            `yaml:"report_format"` // "text", "json" or "xlsx"
	DefaultHeaders         map[string]string `yaml:"default_headers"`
	Mock                   MockConfig        `yaml:"mock"`
}

// MockConfig holds the local mock server configuration
type MockConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MaxRecorded int    `yaml:"max_recorded"` // Ring buffer size for captured exchanges
}

// Supported report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ValidFormats returns all supported report formats
func ValidFormats() []string {
	return []string{FormatText, FormatJSON, FormatXLSX}
}

// Default returns the default configuration. The base URL points at the
// built-in mock server so a fresh checkout can run end to end without an
// external target.
func Default() *Config {
	return &Config{
		BaseURL:                "http://127.0.0.1:8089/api",
		TimeoutSeconds:         10,
		MaxResponseTimeSeconds: 0.8,
		LogDir:                 "./logs",
		ReportDir:              "./reports",
		ReportFormat:           FormatText,
		Mock: MockConfig{
			Host:        "127.0.0.1",
			Port:        8089,
			MaxRecorded: 200,
		},
	}
}

// Load reads configuration from a YAML file, overlaying the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %v", c.TimeoutSeconds)
	}
	if c.MaxResponseTimeSeconds <= 0 {
		return fmt.Errorf("max_response_time_seconds must be positive, got %v", c.MaxResponseTimeSeconds)
	}
	recognized := false
	for _, f := range ValidFormats() {
		if c.ReportFormat == f {
			recognized = true
			break
		}
	}
	if !recognized {
		return fmt.Errorf("report_format %q is not one of %v", c.ReportFormat, ValidFormats())
	}
	if c.Mock.Port <= 0 || c.Mock.Port > 65535 {
		return fmt.Errorf("mock.port %d is out of range", c.Mock.Port)
	}
	if c.Mock.MaxRecorded <= 0 {
		return fmt.Errorf("mock.max_recorded must be positive, got %d", c.Mock.MaxRecorded)
	}
	return nil
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// MaxResponseTime returns the latency pass threshold
func (c *Config) MaxResponseTime() time.Duration {
	return time.Duration(c.MaxResponseTimeSeconds * float64(time.Second))
}
