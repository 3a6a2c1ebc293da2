package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arikankainen/consequat-server/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("MONGODB_URI_DEV", "mongodb://localhost:27017")
	t.Setenv("JWT_PRIVATE_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "photoapp", cfg.MongoDatabase)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadSelectsURIByEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("MONGODB_URI_TEST", "mongodb://test-host:27017")
	t.Setenv("MONGODB_URI_DEV", "mongodb://dev-host:27017")
	t.Setenv("JWT_PRIVATE_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://test-host:27017", cfg.MongoURI)
}

func TestLoadRejectsIncomplete(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_PRIVATE_KEY", "secret")
	_, err := config.Load()
	assert.Error(t, err, "missing production mongo URI")

	t.Setenv("MONGODB_URI_PROD", "mongodb://prod:27017")
	t.Setenv("JWT_PRIVATE_KEY", "")
	_, err = config.Load()
	assert.Error(t, err, "missing signing key")

	t.Setenv("APP_ENV", "staging")
	t.Setenv("JWT_PRIVATE_KEY", "secret")
	_, err = config.Load()
	assert.Error(t, err, "unknown environment")
}
