package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hmans/todos/internal/todo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ConfigFile = "todos.yaml"

// DefaultPort matches the port the service has always listened on.
const DefaultPort = 4103

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogFormats lists the accepted log encodings.
var LogFormats = []string{"console", "json"}

// Config holds the todos configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Client  ClientConfig  `yaml:"client"`
}

// ServerConfig defines the HTTP server.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Playground      bool          `yaml:"playground"`
	Introspection   bool          `yaml:"introspection"`
	ComplexityLimit int           `yaml:"complexity_limit,omitempty"`
	CORSOrigins     []string      `yaml:"cors_origins,omitempty"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig defines how todos are created.
type StoreConfig struct {
	IDStrategy string   `yaml:"id_strategy"`
	IDLength   int      `yaml:"id_length,omitempty"`
	Seed       []string `yaml:"seed,omitempty"`
}

// SearchConfig defines the full-text index.
type SearchConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig defines the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ClientConfig defines where CLI commands send their requests.
type ClientConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			Playground:      true,
			Introspection:   true,
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			IDStrategy: todo.StrategySequence,
			IDLength:   8,
		},
		Search: SearchConfig{
			Enabled: true,
			Limit:   100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Client: ClientConfig{
			Endpoint: fmt.Sprintf("http://localhost:%d/graphql", DefaultPort),
			Timeout:  10 * time.Second,
		},
	}
}

// Load reads configuration from path, then applies a .env file (if present) and
// TODOS_* environment overrides. A missing config file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	cfg.applyDefaults()

	// A missing .env is normal; only the process environment matters then.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Store.IDStrategy == "" {
		c.Store.IDStrategy = d.Store.IDStrategy
	}
	if c.Store.IDLength == 0 {
		c.Store.IDLength = d.Store.IDLength
	}
	if c.Search.Limit == 0 {
		c.Search.Limit = d.Search.Limit
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Client.Endpoint == "" {
		c.Client.Endpoint = d.Client.Endpoint
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = d.Client.Timeout
	}
}

// ApplyEnv overrides settings from TODOS_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TODOS_HOST"); ok {
		c.Server.Host = v
	}
	if v, ok := lookup("TODOS_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODOS_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("TODOS_LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("TODOS_LOG_FORMAT"); ok {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := lookup("TODOS_ENDPOINT"); ok {
		c.Client.Endpoint = v
	}
	if v, ok := lookup("TODOS_ID_STRATEGY"); ok {
		c.Store.IDStrategy = v
	}
	return nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if !slices.Contains(todo.Strategies, c.Store.IDStrategy) {
		return fmt.Errorf("invalid id strategy: %s (must be %s)", c.Store.IDStrategy, strings.Join(todo.Strategies, ", "))
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level: %s (must be %s)", c.Log.Level, strings.Join(LogLevels, ", "))
	}
	if !slices.Contains(LogFormats, c.Log.Format) {
		return fmt.Errorf("invalid log format: %s (must be %s)", c.Log.Format, strings.Join(LogFormats, ", "))
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q", c.Metrics.Path)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
