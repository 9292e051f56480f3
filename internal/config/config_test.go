package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults with secret from env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
		assert.Equal(t, 200, cfg.ComplexityLimit)
		assert.Equal(t, "tutorhub", cfg.Mongo.Database)
		assert.Equal(t, "5432", cfg.Postgres.Port)
	})

	t.Run("Missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE", "Mongo")
		t.Setenv("TOKEN_TTL", "30m")
		t.Setenv("MONGO_URI", "mongodb://db:27017")
		t.Setenv("DB_HOST", "pg")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, StorageMongo, cfg.Storage)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
		assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
		assert.Equal(t, "pg", cfg.Postgres.Host)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE", "redis")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage")
	})

	t.Run("Config file", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: postgres\nhttp_port: \"9090\"\ndb_name: tutors\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, "tutors", cfg.Postgres.Name)
	})

	t.Run("Missing config file", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestValidateDurations(t *testing.T) {
	valid := Config{
		HTTPPort:        "8080",
		Storage:         StorageMemory,
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		RequestTimeout:  time.Second,
		ComplexityLimit: 10,
		Mongo:           MongoConfig{Timeout: time.Second},
	}
	require.NoError(t, valid.Validate())

	noTTL := valid
	noTTL.TokenTTL = 0
	assert.Error(t, noTTL.Validate())

	noTimeout := valid
	noTimeout.RequestTimeout = -time.Second
	assert.Error(t, noTimeout.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u dbname=n password=p sslmode=disable", cfg.DSN())
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, Config{AppEnv: "development"}.IsDevelopment())
	assert.True(t, Config{AppEnv: "Development"}.IsDevelopment())
	assert.False(t, Config{AppEnv: "production"}.IsDevelopment())
	assert.False(t, Config{}.IsDevelopment())
}
