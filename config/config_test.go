package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseEnv(t *testing.T, vars map[string]string) (*Config, error) {
	t.Helper()
	return parse(env.Options{Environment: vars})
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parseEnv(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, ProviderPostgres, cfg.App.DataProvider)
	assert.Equal(t, time.UTC, cfg.App.Location())
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "noop", cfg.Mailer.Provider)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.S3.Enabled())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parseEnv(t, map[string]string{
		"PORT":                     "9090",
		"ALLOWED_ORIGINS":          "https://admin.fleet.example,https://staging.fleet.example",
		"DISPLAY_TIMEZONE":         "America/Mexico_City",
		"DATA_PROVIDER":            "mock",
		"TOKEN_TTL":                "30m",
		"REDIS_ADDR":               "redis:6379",
		"S3_ENDPOINT":              "minio:9000",
		"S3_ACCESS_KEY":            "minio",
		"S3_SECRET_KEY":            "minio123",
		"BOOTSTRAP_ADMIN_EMAIL":    "ops@fleet.example",
		"BOOTSTRAP_ADMIN_PASSWORD": "longenough",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"https://admin.fleet.example", "https://staging.fleet.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "America/Mexico_City", cfg.App.Location().String())
	assert.Equal(t, ProviderMock, cfg.App.DataProvider)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "contracts", cfg.S3.Bucket)
	assert.Equal(t, "ops@fleet.example", cfg.Auth.AdminEmail)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr string
	}{
		{name: "unknown provider", vars: map[string]string{"DATA_PROVIDER": "sqlite"}, wantErr: "DataProvider"},
		{name: "bad time zone", vars: map[string]string{"DISPLAY_TIMEZONE": "Mars/Olympus"}, wantErr: "DisplayTimeZone"},
		{name: "bad log level", vars: map[string]string{"LOG_LEVEL": "verbose"}, wantErr: "Level"},
		{name: "short secret", vars: map[string]string{"JWT_SECRET": "short"}, wantErr: "JWTSecret"},
		{name: "bcrypt cost too low", vars: map[string]string{"BCRYPT_COST": "2"}, wantErr: "BcryptCost"},
		{name: "admin email without password", vars: map[string]string{"BOOTSTRAP_ADMIN_EMAIL": "ops@fleet.example"}, wantErr: "AdminPassword"},
		{name: "s3 without keys", vars: map[string]string{"S3_ENDPOINT": "minio:9000"}, wantErr: "AccessKey"},
		{name: "ses without keys", vars: map[string]string{"EMAIL_PROVIDER": "ses"}, wantErr: "SESAccessKeyID"},
		{name: "bad redis addr", vars: map[string]string{"REDIS_ADDR": "redis"}, wantErr: "Addr"},
		{name: "bad duration", vars: map[string]string{"TOKEN_TTL": "soon"}, wantErr: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEnv(t, tt.vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_ProductionRequiresSecret(t *testing.T) {
	_, err := parseEnv(t, map[string]string{"GO_ENV": "production"})
	require.ErrorIs(t, err, ErrInsecureSecret)

	cfg, err := parseEnv(t, map[string]string{"GO_ENV": "production", "JWT_SECRET": "a-real-production-secret"})
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
}
