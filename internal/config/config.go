package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvDevelopment is the docs environment that exposes DEV pages.
	EnvDevelopment = "development"
	// EnvProduction is the default docs environment.
	EnvProduction = "production"

	// DocsEnvVar overrides docs.env when set.
	DocsEnvVar = "ROJIFI_DOCS_ENV"
)

// Config holds the rojifi-docs configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Docs    DocsConfig    `yaml:"docs"`
	Runner  RunnerConfig  `yaml:"runner"`
	Logging LoggingConfig `yaml:"logging"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DocsConfig selects the content source and the docs environment.
type DocsConfig struct {
	Env        string `yaml:"env"`         // development, production (default)
	ContentDir string `yaml:"content_dir"` // empty = embedded content
}

// DevMode reports whether DEV-status pages are visible.
func (d DocsConfig) DevMode() bool {
	return d.Env == EnvDevelopment
}

// RunnerConfig holds code run simulation settings.
type RunnerConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// MCPConfig controls the MCP endpoint mounted on the HTTP server.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	cfg := Config{MCP: MCPConfig{Enabled: true}}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from path. An empty path looks up
// config/<env>.yaml for the current environment and falls back to the
// defaults when that file does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = findConfigPath(GetEnv())
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			cfg.applyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	cfg := Config{MCP: MCPConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

func (c *Config) applyEnvOverrides() {
	if env := os.Getenv(DocsEnvVar); env != "" {
		c.Docs.Env = env
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 10 * time.Second
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Docs.Env == "" {
		c.Docs.Env = EnvProduction
	}
	if c.Runner.Delay <= 0 {
		c.Runner.Delay = 800 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.MCP.Path == "" {
		c.MCP.Path = "/mcp"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Docs.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("docs.env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Docs.Env)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be \"json\" or \"text\", got %q", c.Logging.Format)
	}
	if !strings.HasPrefix(c.MCP.Path, "/") {
		return fmt.Errorf("mcp.path must start with /, got %q", c.MCP.Path)
	}
	if c.Docs.ContentDir != "" {
		info, err := os.Stat(c.Docs.ContentDir)
		if err != nil {
			return fmt.Errorf("docs.content_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("docs.content_dir %s is not a directory", c.Docs.ContentDir)
		}
	}
	return nil
}

func findConfigPath(env string) string {
	return filepath.Join("config", fmt.Sprintf("%s.yaml", env))
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
