package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalYAML = `
jwt:
  accessSecret: access-secret
  refreshSecret: refresh-secret
mongo:
  uri: mongodb://localhost:27017
owner:
  name: Owner
  email: owner@example.com
  password: owner-password
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.App.ReadTimeout)
	assert.Equal(t, 15, cfg.JWT.AccessTTLMinutes)
	assert.Equal(t, 7, cfg.JWT.RefreshTTLDays)
	assert.Equal(t, "slicestack", cfg.Mongo.Database)
	assert.Equal(t, 15*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.Redis.ConnectTimeout)
	assert.Equal(t, "pizza_images", cfg.S3.Folder)
	assert.Equal(t, 10, cfg.Security.OtpTTLMinutes)
	assert.Equal(t, 5, cfg.Security.OtpRateLimitPerEmailPerHour)
	assert.Equal(t, 10, cfg.Security.PasswordHashCost)
}

func TestLoadFileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  port: 9090
jwt:
  accessSecret: access-secret
  refreshSecret: refresh-secret
mongo:
  uri: mongodb://localhost:27017
  database: pizzatest
  connect_timeout: 3s
owner:
  name: Owner
  email: owner@example.com
  password: owner-password
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "pizzatest", cfg.Mongo.Database)
	assert.Equal(t, 3*time.Second, cfg.Mongo.ConnectTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "7070")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("OWNER_EMAIL", "boss@example.com")
	t.Setenv("OTP_TTL_MINUTES", "3")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, "boss@example.com", cfg.Owner.Email)
	assert.Equal(t, 3, cfg.Security.OtpTTLMinutes)
}

func TestLoadRequiredFields(t *testing.T) {
	t.Run("MissingJWTSecrets", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
mongo:
  uri: mongodb://localhost:27017
owner:
  email: owner@example.com
  password: owner-password
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("MissingMongoURI", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
jwt:
  accessSecret: a
  refreshSecret: b
owner:
  email: owner@example.com
  password: owner-password
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MONGO_URI")
	})

	t.Run("MissingOwnerCredentials", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
jwt:
  accessSecret: a
  refreshSecret: b
mongo:
  uri: mongodb://localhost:27017
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OWNER_EMAIL")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
