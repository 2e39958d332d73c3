package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("OPENPIX_APP_ID", "appid-secret")
		t.Setenv("OPENPIX_WEBHOOK_SECRET", "hook-secret")
		t.Setenv("PLATFORM_FEE_PCT", "12")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "appid-secret", cfg.OpenPixAppID)
		assert.Equal(t, "hook-secret", cfg.WebhookSecret)
		assert.Equal(t, 12, cfg.PlatformFeePct)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("OPENPIX_BASE_URL", "")
		t.Setenv("PLATFORM_FEE_PCT", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "https://api.openpix.com.br/api/v1", cfg.OpenPixBaseURL)
		assert.Equal(t, 15, cfg.PlatformFeePct)
	})

	t.Run("InvalidFeeFallsBack", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("PLATFORM_FEE_PCT", "not-a-number")

		cfg := LoadConfig()
		assert.Equal(t, 15, cfg.PlatformFeePct)
	})
}
