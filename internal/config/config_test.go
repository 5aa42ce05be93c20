package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/admin")
	t.Setenv("ADMIN_JWT_SECRET", "itcast")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "admin", cfg.AdminJWT.Audience)
	assert.Equal(t, 2*time.Hour, cfg.AdminJWT.TTL)
	assert.Equal(t, "token", cfg.AdminJWT.TokenHeader)
	assert.Equal(t, "md5", cfg.PasswordHash)
	assert.Equal(t, "123456", cfg.DefaultPassword)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "user", cfg.UserJWT.Audience)
	assert.Equal(t, "authentication", cfg.UserJWT.TokenHeader)
	assert.Empty(t, cfg.UserJWT.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_JWT_TTL", "30m")
	t.Setenv("PASSWORD_HASH", "BCRYPT")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.AdminJWT.TTL)
	assert.Equal(t, "bcrypt", cfg.PasswordHash)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
}

func TestLoad_RequiresAdminSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/admin")
	t.Setenv("ADMIN_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_JWT_SECRET")
}

func TestValidate_UserProfileOptional(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USER_JWT_SECRET", "user-secret")
	t.Setenv("USER_JWT_TTL", "-1s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USER_JWT_TTL")
}

func TestValidate_RejectsUnknownHash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PASSWORD_HASH", "sha1")

	_, err := Load()
	require.Error(t, err)
}
