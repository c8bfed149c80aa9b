package config

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLoad_Defaults(t *testing.T) {
	for _, name := range []string{"DB_PATH", "PORT", "API_KEY", "CORS_ORIGIN", "APP_ENV", "ASSET_DIR"} {
		t.Setenv(name, "")
	}

	cfg := Load()
	assert.Equal(t, "moltpress.sqlite", cfg.DBPath)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "public/images", cfg.AssetDir)
	assert.Equal(t, false, cfg.Production())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/data/app.sqlite")
	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "secret")
	t.Setenv("CORS_ORIGIN", "https://example.com")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, "/data/app.sqlite", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "https://example.com", cfg.CORSOrigin)
	assert.Equal(t, true, cfg.Production())
}
