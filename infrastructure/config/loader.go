package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default settings file locations, relative to the loader directory.
const (
	deploymentFile = "porkbun-domain.yaml"
	localFile      = "local.yaml"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "PORKBUN_DOMAIN_"

// Loader loads settings from layered sources.
type Loader struct {
	// Dir is the directory holding the settings files (default "settings").
	Dir string

	// ExpandEnv enables ${VAR} expansion inside settings files.
	ExpandEnv bool
}

// NewLoader creates a loader with default behavior.
func NewLoader() *Loader {
	return &Loader{
		Dir:       "settings",
		ExpandEnv: true,
	}
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithDir overrides the settings directory.
func WithDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.Dir = dir
	}
}

// WithEnvExpansion enables or disables ${VAR} expansion in settings files.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.ExpandEnv = enabled
	}
}

// NewLoaderWithOptions creates a loader with the specified options.
func NewLoaderWithOptions(opts ...LoaderOption) *Loader {
	l := NewLoader()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds settings from defaults, layered files, and environment
// variables, then validates the result.
func (l *Loader) Load() (*Settings, error) {
	s := Defaults()

	for _, name := range []string{deploymentFile, localFile} {
		path := filepath.Join(l.Dir, name)
		if err := l.applyFile(&s, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&s); err != nil {
		return nil, err
	}

	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// applyFile overlays one settings file onto s. A missing file is not an error.
func (l *Loader) applyFile(s *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if l.ExpandEnv {
		data = []byte(ExpandEnv(string(data)))
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// applyEnv overlays PORKBUN_DOMAIN_* environment variables onto s.
func applyEnv(s *Settings) error {
	if v, ok := lookup("API_KEY"); ok {
		s.APIKey = v
	}
	if v, ok := lookup("SECRET_KEY"); ok {
		s.SecretKey = v
	}
	if v, ok := lookup("BASE_URL"); ok {
		s.BaseURL = v
	}
	if v, ok := lookup("TIMEOUT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sTIMEOUT: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		s.Timeout = f
	}
	if v, ok := lookup("MAX_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_RETRIES: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		s.MaxRetries = n
	}
	if v, ok := lookup("ENABLE_HTTP_TRANSPORT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sENABLE_HTTP_TRANSPORT: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		s.EnableHTTPTransport = b
	}
	if v, ok := lookup("HTTP_HOST"); ok {
		s.HTTPHost = v
	}
	if v, ok := lookup("HTTP_PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sHTTP_PORT: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		s.HTTPPort = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		s.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		s.LogFormat = strings.ToLower(v)
	}
	return nil
}

func lookup(field string) (string, bool) {
	return os.LookupEnv(EnvPrefix + field)
}
