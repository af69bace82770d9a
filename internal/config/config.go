// Package config loads and validates the actiongraph build configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Phases    []PhaseConfig   `yaml:"phases"`
	Snapshot  SnapshotConfig  `yaml:"snapshot,omitempty"`
	Watch     WatchConfig     `yaml:"watch,omitempty"`
	Notify    NotifyConfig    `yaml:"notify,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
}

// WorkspaceConfig describes the workspace layout: the root directory, the
// root package, and the directories of all known packages relative to root.
type WorkspaceConfig struct {
	Root        string            `yaml:"root"`
	RootPackage string            `yaml:"root_package"`
	Packages    map[string]string `yaml:"packages,omitempty"`
}

// PhaseConfig is one build action descriptor: a builder bound to a package
// with include/exclude patterns, options, and policy flags.
type PhaseConfig struct {
	Builder    string         `yaml:"builder"`
	Package    string         `yaml:"package"`
	Include    []string       `yaml:"include,omitempty"`
	Exclude    []string       `yaml:"exclude,omitempty"`
	Options    map[string]any `yaml:"options,omitempty"`
	Optional   bool           `yaml:"optional,omitempty"`
	HideOutput bool           `yaml:"hide_output,omitempty"`
}

// SnapshotConfig configures the plan snapshot store.
type SnapshotConfig struct {
	Path string `yaml:"path,omitempty"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce  time.Duration `yaml:"debounce,omitempty"`
	Reconcile time.Duration `yaml:"reconcile,omitempty"`
}

// NotifyConfig configures optional NATS publication of plan-change events.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Addr    string `yaml:"addr,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; absence is not an error.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, normalizes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if _, err := Normalize(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = "."
	}
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = "actiongraph.db"
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 2 * time.Second
	}
	if cfg.Watch.Reconcile == 0 {
		cfg.Watch.Reconcile = 5 * time.Minute
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "actiongraph.plan"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9464"
	}
	// Phases without an explicit package default to the root package.
	for i := range cfg.Phases {
		if cfg.Phases[i].Package == "" {
			cfg.Phases[i].Package = cfg.Workspace.RootPackage
		}
	}
}

// Validate checks structural requirements that normalization cannot repair.
func Validate(cfg *Config) error {
	if cfg.Workspace.RootPackage == "" {
		return fmt.Errorf("workspace.root_package is required")
	}
	if len(cfg.Phases) == 0 {
		return fmt.Errorf("at least one phase is required")
	}
	for i, p := range cfg.Phases {
		if p.Builder == "" {
			return fmt.Errorf("phase %d: builder is required", i)
		}
		if p.Package == "" {
			return fmt.Errorf("phase %d: package is required", i)
		}
	}
	return nil
}
