// Package config provides layered configuration loading for porkbun-domain-mcp.
//
// Precedence, later overriding earlier:
//  1. Field defaults
//  2. settings/porkbun-domain.yaml (committed deployment defaults)
//  3. settings/local.yaml (gitignored local overrides)
//  4. Environment variables PORKBUN_DOMAIN_<FIELD>
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the production Porkbun API endpoint.
const DefaultBaseURL = "https://porkbun.com/api/json/v3"

// ErrInvalidConfig indicates a settings value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Settings holds the full configuration surface of the server.
// It is constructed once at process start and passed down explicitly.
type Settings struct {
	// APIKey is the Porkbun API key.
	APIKey string `yaml:"api_key"`

	// SecretKey is the Porkbun secret API key.
	SecretKey string `yaml:"secret_key"`

	// BaseURL is the Porkbun API base URL. Trailing slashes are stripped.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout in seconds (1-120).
	Timeout float64 `yaml:"timeout"`

	// MaxRetries is the maximum retry attempts on transport/HTTP failure (0-5).
	MaxRetries int `yaml:"max_retries"`

	// EnableHTTPTransport serves MCP over HTTP instead of stdio.
	EnableHTTPTransport bool `yaml:"enable_http_transport"`

	// HTTPHost is the HTTP bind address.
	HTTPHost string `yaml:"http_host"`

	// HTTPPort is the HTTP bind port (1-65535).
	HTTPPort int `yaml:"http_port"`

	// LogLevel is the minimum log level (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFormat is the log output format (json or console).
	LogFormat string `yaml:"log_format"`
}

// Defaults returns settings populated with field defaults.
func Defaults() Settings {
	return Settings{
		BaseURL:    DefaultBaseURL,
		Timeout:    30,
		MaxRetries: 3,
		HTTPHost:   "127.0.0.1",
		HTTPPort:   3043,
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// Validate checks all values against their allowed ranges.
func (s *Settings) Validate() error {
	if s.Timeout < 1 || s.Timeout > 120 {
		return fmt.Errorf("%w: timeout %v out of range [1, 120]", ErrInvalidConfig, s.Timeout)
	}
	if s.MaxRetries < 0 || s.MaxRetries > 5 {
		return fmt.Errorf("%w: max_retries %d out of range [0, 5]", ErrInvalidConfig, s.MaxRetries)
	}
	if s.HTTPPort < 1 || s.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d out of range [1, 65535]", ErrInvalidConfig, s.HTTPPort)
	}
	switch s.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_format %q must be json or console", ErrInvalidConfig, s.LogFormat)
	}
	return nil
}

// Normalize cleans up values after loading.
func (s *Settings) Normalize() {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
}

// HasCredentials reports whether both API credentials are configured.
func (s *Settings) HasCredentials() bool {
	return s.APIKey != "" && s.SecretKey != ""
}

// MaskedAPIKey returns the API key suitable for logging.
func (s *Settings) MaskedAPIKey() string {
	if len(s.APIKey) <= 4 {
		return "***"
	}
	return "..." + s.APIKey[len(s.APIKey)-4:]
}

// AuthPayload returns the authentication fields merged into every request body.
func (s *Settings) AuthPayload() map[string]string {
	return map[string]string{
		"apikey":       s.APIKey,
		"secretapikey": s.SecretKey,
	}
}

// HTTPTimeout returns the request timeout as a duration.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.Timeout * float64(time.Second))
}

// HTTPAddr returns the host:port bind address for the HTTP transport.
func (s *Settings) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)
}
