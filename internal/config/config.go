// Package config provides configuration for warebot commands. Settings
// come from an optional YAML file with env-var overrides on top, so a
// bare `warebot` run works out of the box.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultAddr         = ":8080"
	DefaultStateBackend = "json"
	DefaultStatePath    = "data/warehouse.json"
	DefaultAuditPath    = "data/audit.jsonl"
	DefaultLogLevel     = "info"
)

// Config holds the full server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// StateBackend selects the document store: "json" or "sqlite".
	StateBackend string `yaml:"state_backend"`

	// StatePath is the document file (json) or database file (sqlite).
	StatePath string `yaml:"state_path"`

	// ArchiveDir enables the compressed state history when set.
	ArchiveDir string `yaml:"archive_dir"`

	// AuditPath is the rotating audit log file. Empty disables auditing.
	AuditPath string `yaml:"audit_path"`

	// AuthSecret enables bearer-token auth on the command API when set.
	AuthSecret string `yaml:"auth_secret"`

	// DiscoveryURL is the connected-endpoints enumeration API. Empty
	// means only locally connected gadgets are discoverable.
	DiscoveryURL string `yaml:"discovery_url"`

	// DiscoveryToken authorizes calls to the discovery API.
	DiscoveryToken string `yaml:"discovery_token"`
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist), then applies env overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Addr, "WAREBOT_ADDR")
	setFromEnv(&c.LogLevel, "WAREBOT_LOG_LEVEL")
	setFromEnv(&c.StateBackend, "WAREBOT_STATE_BACKEND")
	setFromEnv(&c.StatePath, "WAREBOT_STATE_PATH")
	setFromEnv(&c.ArchiveDir, "WAREBOT_ARCHIVE_DIR")
	setFromEnv(&c.AuditPath, "WAREBOT_AUDIT_PATH")
	setFromEnv(&c.AuthSecret, "WAREBOT_AUTH_SECRET")
	setFromEnv(&c.DiscoveryURL, "WAREBOT_DISCOVERY_URL")
	setFromEnv(&c.DiscoveryToken, "WAREBOT_DISCOVERY_TOKEN")
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.StateBackend == "" {
		c.StateBackend = DefaultStateBackend
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath
	}
	if c.AuditPath == "" {
		c.AuditPath = DefaultAuditPath
	}
}

func (c *Config) validate() error {
	switch c.StateBackend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("config: unknown state backend %q (want json or sqlite)", c.StateBackend)
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
