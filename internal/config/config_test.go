package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: "9090"
  mode: debug
  log_level: warn
jwt:
  secret: yaml-secret
  expire_hours: 2
access:
  preview_chars: 120
storage:
  type: minio
cors:
  allowed_origins:
    - https://study.example
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 120, cfg.Access.PreviewChars)
	assert.Equal(t, []string{"https://study.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 60*time.Second, cfg.Cache.ListTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ADMIN_EMAIL", "boss@example.com")
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.True(t, cfg.Admin.IsAdminEmail(" Boss@Example.com "))
	assert.False(t, cfg.Admin.IsAdminEmail("other@example.com"))
}

func TestValidate(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server:\n  mode: debug\n"))
	assert.Error(t, err, "missing secret")

	_, err = LoadConfig(writeConfig(t, "server:\n  mode: release\njwt:\n  secret: short\n"))
	assert.Error(t, err, "short secret in release mode")

	cfg := &Config{JWT: JWTConfig{Secret: "s", ExpireTime: time.Hour}}
	assert.NoError(t, cfg.Validate())

	var empty AdminConfig
	assert.False(t, empty.IsAdminEmail(""))
}
