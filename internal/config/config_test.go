package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_FileEnvAndDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: ":9090"
jwt:
  access_token_ttl: 30m
auth:
  cookie_name: sid
`)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVICE_ROLE_KEY", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "legacy-service-key")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "anon")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/eduafri")

	require.NoError(t, LoadConfig(dir))

	assert.Equal(t, ":9090", Cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, Cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "sid", Cfg.Auth.CookieName)
	assert.Equal(t, "s3cret", Cfg.JWT.SecretKey)
	assert.Equal(t, "legacy-service-key", Cfg.Auth.ServiceRoleKey)
	assert.Equal(t, "anon", Cfg.Auth.AnonKey)
	assert.Equal(t, "postgres://u:p@db:5432/eduafri", Cfg.Database.URL)

	// 未指定の値はデフォルト
	assert.Equal(t, DefaultRefreshMinutes*time.Minute, Cfg.JWT.RefreshWindow)
	assert.Equal(t, int64(DefaultLessonSizeBytes), Cfg.Download.LessonSizeBytes)
	assert.Equal(t, DefaultCatalogWarmSchedule, Cfg.Jobs.CatalogWarmSchedule)
	assert.Equal(t, "log", Cfg.Mailer.Type)
	assert.Equal(t, AppName, Cfg.App.Name)
}

func TestLoadConfig_PrimaryEnvNameWins(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \":8081\"\n")
	t.Setenv("SERVICE_ROLE_KEY", "primary")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "legacy")

	require.NoError(t, LoadConfig(dir))
	assert.Equal(t, "primary", Cfg.Auth.ServiceRoleKey)
}

func TestApplyDefaults_ClampsSampleRatio(t *testing.T) {
	cfg := Config{Otel: OtelConfig{SampleRatio: 4}}
	applyDefaults(&cfg)
	assert.Equal(t, 0.1, cfg.Otel.SampleRatio)
	assert.Equal(t, "stdout", cfg.Otel.Exporter)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
}

func TestServerConfig_WriteTimeoutOutlivesHandlerTimeout(t *testing.T) {
	tests := []struct {
		name        string
		cfg         ServerConfig
		wantHandler time.Duration
	}{
		{name: "unset uses default", cfg: ServerConfig{}, wantHandler: DefaultRequestTimeout},
		{name: "configured", cfg: ServerConfig{RequestTimeout: 30 * time.Second}, wantHandler: 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHandler, tt.cfg.HandlerTimeout())
			assert.Greater(t, tt.cfg.WriteTimeout(), tt.cfg.HandlerTimeout())
		})
	}
}
