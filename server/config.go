package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clarsbyte/onshape-mcp/onshape"
)

const (
	projectConfigName = "onshape-mcp.yaml"
	homeConfigName    = "config.yaml"
)

// Transport tokens accepted by Config and the serve command.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Config is the declarative server configuration. Zero fields fall back
// to DefaultConfig values; environment overrides win over the file.
type Config struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	Transport string `yaml:"transport,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the stdio-on-loopback defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   onshape.DefaultBaseURL,
		Transport: TransportStdio,
		Host:      "127.0.0.1",
		Port:      3000,
		LogLevel:  "info",
	}
}

// DiscoverConfigPath resolves the config file location with first-match
// semantics: the explicit path when given, then onshape-mcp.yaml in the
// working directory, then ~/.config/onshape-mcp/config.yaml.
func DiscoverConfigPath(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve user home: %w", err)
	}
	return DiscoverConfigPathFrom(explicitPath, cwd, homeDir)
}

// DiscoverConfigPathFrom is a testable variant of DiscoverConfigPath.
func DiscoverConfigPathFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if clean := strings.TrimSpace(explicitPath); clean != "" {
		candidates = append(candidates, filepath.Clean(clean))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, ".config", "onshape-mcp", homeConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			// An explicit path that does not exist is an error.
			if i == 0 && strings.TrimSpace(explicitPath) != "" {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// LoadConfig assembles the effective configuration: defaults, then the
// discovered config file, then environment overrides (ONSHAPE_BASE_URL,
// MCP_TRANSPORT, MCP_PORT).
func LoadConfig(explicitPath string) (Config, error) {
	cfg := DefaultConfig()

	path, found, err := DiscoverConfigPath(explicitPath)
	if err != nil {
		return Config{}, err
	}
	if found {
		if err := mergeConfigFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	transport, err := ParseTransport(cfg.Transport)
	if err != nil {
		return Config{}, err
	}
	cfg.Transport = transport
	return cfg, nil
}

func mergeConfigFile(cfg *Config, path string) error {
	// #nosec G304 -- path resolved from explicit local config discovery.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %q: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config %q: %w", path, err)
	}

	if v := strings.TrimSpace(os.ExpandEnv(file.BaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.ExpandEnv(file.Transport)); v != "" {
		cfg.Transport = v
	}
	if v := strings.TrimSpace(os.ExpandEnv(file.Host)); v != "" {
		cfg.Host = v
	}
	if file.Port != 0 {
		cfg.Port = file.Port
	}
	if v := strings.TrimSpace(os.ExpandEnv(file.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ONSHAPE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("MCP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MCP_PORT %q is not a number", v)
		}
		cfg.Port = port
	}
	return nil
}

// ParseTransport normalizes a transport token. Empty selects stdio.
func ParseTransport(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportSSE:
		return TransportSSE, nil
	case TransportHTTP, "streamable-http":
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("unknown transport %q, want stdio, sse or http", s)
	}
}

// ParseLogLevel maps a config level token onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q, want debug, info, warn or error", s)
	}
}
