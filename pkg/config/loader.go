package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the complete codegend.yaml file structure. Every
// section is optional; anything omitted falls back to the built-in default.
type YAMLConfig struct {
	Server   *ServerConfig `yaml:"server"`
	Queue    *QueueConfig  `yaml:"queue"`
	Defaults *Defaults     `yaml:"defaults"`
}

// Initialize loads, merges, and validates configuration from configDir.
//
// Steps:
//  1. Read codegend.yaml (missing file is not an error — built-in defaults apply)
//  2. Expand {{.VAR}} environment references
//  3. Parse YAML
//  4. Merge user values over built-in defaults (user overrides non-zero fields)
//  5. Validate
func Initialize(_ context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	yamlCfg, err := loadYAMLConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	server := DefaultServerConfig()
	if yamlCfg.Server != nil {
		if err := mergo.Merge(server, yamlCfg.Server, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge server config: %w", err)
		}
	}

	queue := DefaultQueueConfig()
	if yamlCfg.Queue != nil {
		if err := mergo.Merge(queue, yamlCfg.Queue, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge queue config: %w", err)
		}
	}

	defaults := DefaultDefaults()
	if yamlCfg.Defaults != nil {
		if err := mergo.Merge(defaults, yamlCfg.Defaults, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge defaults config: %w", err)
		}
	}

	cfg := &Config{
		configDir: configDir,
		Server:    server,
		Queue:     queue,
		Defaults:  defaults,
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	stats := cfg.Stats()
	log.Info("configuration initialized",
		"worker_count", stats.WorkerCount,
		"queue_capacity", stats.QueueCapacity,
		"server_port", stats.ServerPort)

	return cfg, nil
}

// loadYAMLConfig reads codegend.yaml from configDir. A missing file yields an
// empty (all-nil) YAMLConfig so defaults apply untouched.
func loadYAMLConfig(configDir string) (*YAMLConfig, error) {
	path := filepath.Join(configDir, "codegend.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &YAMLConfig{}, nil
		}
		return nil, err
	}

	data = ExpandEnv(data)

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &cfg, nil
}

// validate performs configuration-wide sanity checks.
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return NewValidationError("server", "port", fmt.Errorf("%w: %d", ErrInvalidValue, cfg.Server.Port))
	}
	if cfg.Queue.WorkerCount < 1 {
		return NewValidationError("queue", "worker_count", fmt.Errorf("%w: must be >= 1", ErrInvalidValue))
	}
	if cfg.Queue.QueueCapacity < 1 {
		return NewValidationError("queue", "queue_capacity", fmt.Errorf("%w: must be >= 1", ErrInvalidValue))
	}
	return nil
}
