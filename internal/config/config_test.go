package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 4103 {
		t.Errorf("Port = %d, want 4103", cfg.Server.Port)
	}
	if cfg.Store.IDStrategy != "sequence" {
		t.Errorf("IDStrategy = %q, want \"sequence\"", cfg.Store.IDStrategy)
	}
	if cfg.Client.Endpoint != "http://localhost:4103/graphql" {
		t.Errorf("Endpoint = %q, want \"http://localhost:4103/graphql\"", cfg.Client.Endpoint)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), ConfigFile))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Server.Port != DefaultPort {
			t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFile)
		content := `server:
  port: 8080
  read_timeout: 2s
store:
  id_strategy: nanoid
  seed:
    - Learn GraphQL
    - Ship it
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("Port = %d, want 8080", cfg.Server.Port)
		}
		if cfg.Server.ReadTimeout != 2*time.Second {
			t.Errorf("ReadTimeout = %v, want 2s", cfg.Server.ReadTimeout)
		}
		if cfg.Server.WriteTimeout != 15*time.Second {
			t.Errorf("WriteTimeout = %v, want 15s", cfg.Server.WriteTimeout)
		}
		if cfg.Store.IDStrategy != "nanoid" {
			t.Errorf("IDStrategy = %q, want \"nanoid\"", cfg.Store.IDStrategy)
		}
		if cfg.Store.IDLength != 8 {
			t.Errorf("IDLength = %d, want 8", cfg.Store.IDLength)
		}
		if len(cfg.Store.Seed) != 2 || cfg.Store.Seed[1] != "Ship it" {
			t.Errorf("Seed = %v, want [Learn GraphQL Ship it]", cfg.Store.Seed)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFile)
		if err := os.WriteFile(path, []byte("server: [oops"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for invalid YAML")
		}
	})

	t.Run("missing .env is ignored", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if _, err := Load(filepath.Join(dir, ConfigFile)); err != nil {
			t.Errorf("Load() error = %v", err)
		}
	})

	t.Run("malformed .env", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TODOS_PORT=\"9000\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		_, err := Load(filepath.Join(dir, ConfigFile))
		if err == nil {
			t.Fatal("Load() expected error for malformed .env")
		}
		if !strings.Contains(err.Error(), "loading .env") {
			t.Errorf("Load() error = %v, want it to mention .env", err)
		}
	})

	t.Run("invalid strategy", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ConfigFile)
		if err := os.WriteFile(path, []byte("store:\n  id_strategy: snowflake\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for unknown id strategy")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"TODOS_HOST":        "127.0.0.1",
		"TODOS_PORT":        "9000",
		"TODOS_LOG_LEVEL":   "DEBUG",
		"TODOS_LOG_FORMAT":  "json",
		"TODOS_ENDPOINT":    "http://todos.internal/graphql",
		"TODOS_ID_STRATEGY": "uuid",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q, want \"127.0.0.1:9000\"", cfg.Addr())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if cfg.Client.Endpoint != "http://todos.internal/graphql" {
		t.Errorf("Endpoint = %q", cfg.Client.Endpoint)
	}
	if cfg.Store.IDStrategy != "uuid" {
		t.Errorf("IDStrategy = %q, want \"uuid\"", cfg.Store.IDStrategy)
	}

	if err := cfg.ApplyEnv(envMap(map[string]string{"TODOS_PORT": "eighty"})); err == nil {
		t.Error("ApplyEnv() expected error for non-numeric port")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"uuid strategy", func(c *Config) { c.Store.IDStrategy = "uuid" }, false},
		{"unknown strategy", func(c *Config) { c.Store.IDStrategy = "snowflake" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	cfg := Default()
	cfg.Server.Port = 5000
	cfg.Store.Seed = []string{"first"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != 5000 {
		t.Errorf("Port = %d, want 5000", loaded.Server.Port)
	}
	if len(loaded.Store.Seed) != 1 || loaded.Store.Seed[0] != "first" {
		t.Errorf("Seed = %v, want [first]", loaded.Store.Seed)
	}
}
