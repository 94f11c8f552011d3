package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func waitConfig(t *testing.T, ch <-chan *Config) *Config {
	t.Helper()
	select {
	case cfg := <-ch:
		return cfg
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
		return nil
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))

	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, zap.New(core), func(c *Config) { changes <- c }))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	cfg := waitConfig(t, changes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultPort, cfg.Server.Port)

	t.Run("invalid edit is skipped", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644))
		assert.Eventually(t, func() bool {
			return logs.FilterMessage("config reload failed").Len() > 0
		}, 3*time.Second, 20*time.Millisecond)

		select {
		case c := <-changes:
			t.Fatalf("unexpected reload with level %q", c.Log.Level)
		default:
		}
	})

	t.Run("other files are ignored", func(t *testing.T) {
		other := filepath.Join(filepath.Dir(path), "notes.txt")
		require.NoError(t, os.WriteFile(other, []byte("hi"), 0644))

		select {
		case c := <-changes:
			t.Fatalf("unexpected reload with level %q", c.Log.Level)
		case <-time.After(3 * debounceDelay):
		}
	})
}

func TestWatchStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, nil, func(c *Config) { changes <- c }))
	cancel()

	// Give the loop a moment to observe cancellation.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))

	select {
	case c := <-changes:
		t.Fatalf("unexpected reload after cancel with level %q", c.Log.Level)
	case <-time.After(3 * debounceDelay):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", ConfigFile)
	err := Watch(context.Background(), path, nil, func(*Config) {})
	assert.Error(t, err)
}
