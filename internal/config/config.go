package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultAddr            = ":8080"
	DefaultUserInfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
	DefaultVerifierTimeout = 10 * time.Second
)

// Verifier types
const (
	VerifierUserInfo = "userinfo"
	VerifierOIDC     = "oidc"
	VerifierStatic   = "static"
)

// Store types
const (
	StoreDiscard  = "discard"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Audit types
const (
	AuditLog    = "log"
	AuditFile   = "file"
	AuditMemory = "memory"
	AuditNone   = "none"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Verifier VerifierConfig `yaml:"verifier"`
	Store    StoreConfig    `yaml:"store"`
	Audit    AuditConfig    `yaml:"audit"`
}

// ServerConfig holds configuration for the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// ShutdownTimeout bounds the graceful shutdown of the server.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// VerifierConfig holds configuration for the identity provider used to verify bearer tokens.
type VerifierConfig struct {
	Type string `yaml:"type"` // e.g., "userinfo", "oidc", "static"

	// Timeout bounds a single call to the identity provider.
	// An expired call counts as a failed verification.
	Timeout time.Duration `yaml:"timeout"`

	// Options holds type-specific settings, decoded by the verifier.
	Options map[string]any `yaml:"options"`
}

// StoreConfig holds configuration for the record store.
type StoreConfig struct {
	Type    string         `yaml:"type"` // e.g., "memory", "redis", "postgres", "discard"
	Options map[string]any `yaml:"options"`
}

// AuditConfig holds configuration for the diagnostic event sink.
type AuditConfig struct {
	Type string `yaml:"type"` // e.g., "log", "file", "memory", "none"
	Path string `yaml:"path"`
}

// Default returns the configuration used when no config file is given:
// Google userinfo verification and an in-memory store.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Verifier.Type == "" {
		c.Verifier.Type = VerifierUserInfo
	}
	if c.Verifier.Timeout == 0 {
		c.Verifier.Timeout = DefaultVerifierTimeout
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreMemory
	}
	if c.Audit.Type == "" {
		c.Audit.Type = AuditLog
	}
}

func (c *Config) Validate() error {
	switch c.Verifier.Type {
	case VerifierUserInfo, VerifierOIDC, VerifierStatic:
	default:
		return fmt.Errorf("unknown verifier type %q", c.Verifier.Type)
	}
	if c.Verifier.Timeout < 0 {
		return fmt.Errorf("verifier timeout must not be negative")
	}

	switch c.Store.Type {
	case StoreDiscard, StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}

	switch c.Audit.Type {
	case AuditLog, AuditMemory, AuditNone:
	case AuditFile:
		if c.Audit.Path == "" {
			return fmt.Errorf("audit type %q requires a path", AuditFile)
		}
	default:
		return fmt.Errorf("unknown audit type %q", c.Audit.Type)
	}

	return nil
}
