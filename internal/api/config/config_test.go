package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		require.NoError(t, LoadConfigFrom(t.TempDir()))
		assert.Equal(t, 8080, Cfg.Server.Port)
		assert.Equal(t, 24, Cfg.JWT.ExpireHours)
		assert.Equal(t, 1500, Cfg.Unfurl.TimeoutMs)
		assert.Equal(t, "@every 1m", Cfg.Job.PostMetricSpec)
		assert.Empty(t, Cfg.DB.DSN)
	})

	t.Run("file values and env overrides", func(t *testing.T) {
		dir := t.TempDir()
		content := "server:\n  port: 9000\nredis:\n  addr: 127.0.0.1:6379\nkafka:\n  brokers: [\"a:9092\", \"b:9092\"]\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
		t.Setenv("RIPPLE_SERVER_PORT", "9100")

		require.NoError(t, LoadConfigFrom(dir))
		assert.Equal(t, 9100, Cfg.Server.Port)
		assert.Equal(t, "127.0.0.1:6379", Cfg.Redis.Addr)
		assert.Equal(t, []string{"a:9092", "b:9092"}, Cfg.Kafka.Brokers)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [oops"), 0o644))
		assert.Error(t, LoadConfigFrom(dir))
	})
}
