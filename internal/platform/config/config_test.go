package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Parse()
		require.NoError(t, err)

		assert.Equal(t, ":3000", cfg.Server.ListenAddr())
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Empty(t, cfg.Database.URL)
		assert.Equal(t, 10, cfg.Database.RetryAttempts)
		assert.Equal(t, 3*time.Second, cfg.Database.RetryInterval)
		assert.Empty(t, cfg.Redis.URL)
		assert.Equal(t, 256, cfg.Audit.DenialBuffer)
	})

	t.Run("PORT sets the listen port", func(t *testing.T) {
		t.Setenv("PORT", "8081")
		cfg, err := Parse()
		require.NoError(t, err)
		assert.Equal(t, ":8081", cfg.Server.ListenAddr())
	})

	t.Run("explicit address wins over PORT", func(t *testing.T) {
		t.Setenv("PORT", "8081")
		t.Setenv("PHONEREG_ADDR", "127.0.0.1:9000")
		cfg, err := Parse()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr())
	})

	t.Run("database and redis settings", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://user:pass123@db:5432/phone_db?sslmode=disable")
		t.Setenv("DB_RETRY_ATTEMPTS", "0")
		t.Setenv("REDIS_URL", "redis://cache:6379/0")
		t.Setenv("REDIS_COUNT_TTL", "1h")
		t.Setenv("AUDIT_DENIAL_BUFFER", "16")
		cfg, err := Parse()
		require.NoError(t, err)

		assert.Equal(t, "postgres://user:pass123@db:5432/phone_db?sslmode=disable", cfg.Database.URL)
		assert.Equal(t, 1, cfg.Database.RetryAttempts, "at least one attempt is made")
		assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
		assert.Equal(t, time.Hour, cfg.Redis.CountTTL)
		assert.Equal(t, 16, cfg.Audit.DenialBuffer)
	})

	t.Run("malformed duration is an error", func(t *testing.T) {
		t.Setenv("DB_RETRY_INTERVAL", "soon")
		_, err := Parse()
		assert.Error(t, err)
	})
}
