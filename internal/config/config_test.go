package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPLOAD_PATH_PREFIX", "uploads/")
	t.Setenv("CLEANUP_DELETES_PER_SEC", "2.5")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "uploads/", cfg.Upload.PathPrefix)
	assert.Equal(t, 2.5, cfg.Cleanup.DeletesPerSecond)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPLOAD_SUFFIX_ALPHABET", "")
	t.Setenv("UPLOAD_SUFFIX_LENGTH", "")
	t.Setenv("UPLOAD_REQUIRED", "")
	t.Setenv("UPLOAD_MAX_NAME_LENGTH", "")
	t.Setenv("UPLOAD_MAX_IMAGE_PIXELS", "")
	t.Setenv("UPLOAD_MAX_FETCH_MB", "")
	t.Setenv("APP_BODY_LIMIT_MB", "")

	cfg := Load()

	assert.Equal(t, DefaultSuffixAlphabet, cfg.Upload.SuffixAlphabet)
	assert.Equal(t, 5, cfg.Upload.SuffixLength)
	assert.False(t, cfg.Upload.Required)
	assert.Zero(t, cfg.Upload.MaxNameLength)
	assert.Equal(t, int64(DefaultMaxImagePixels), cfg.Upload.MaxImagePixels)
	assert.Equal(t, 32, cfg.Upload.MaxFetchMB)
	assert.Equal(t, "filearray:cleanup", cfg.Cleanup.QueueKey)
	assert.Equal(t, 32, cfg.BodyLimitMB)
}

func TestLoad_FetchLimitFollowsBodyLimit(t *testing.T) {
	t.Setenv("APP_BODY_LIMIT_MB", "8")
	t.Setenv("UPLOAD_MAX_FETCH_MB", "")
	assert.Equal(t, 8, Load().Upload.MaxFetchMB)

	t.Setenv("UPLOAD_MAX_FETCH_MB", "2")
	assert.Equal(t, 2, Load().Upload.MaxFetchMB)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	t.Setenv(key, "0.5")
	assert.Equal(t, 0.5, getEnvFloat(key, 0))

	t.Setenv(key, "nope")
	assert.Equal(t, 1.0, getEnvFloat(key, 1))
}
