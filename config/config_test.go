package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEnv() (*Config, error) {
	return Load(New())
}

func TestDefaults(t *testing.T) {
	cfg, err := loadEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.DB.Driver)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 28015, cfg.DB.Port)
	assert.Equal(t, "blogger", cfg.DB.Name)
	assert.Equal(t, 10*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "27017")
	t.Setenv("DB_NAME", "posts")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := loadEnv()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 27017, cfg.DB.Port)
	assert.Equal(t, "posts", cfg.DB.Name)
	assert.Equal(t, 2*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLegacyEnvNames(t *testing.T) {
	t.Setenv("RDB_HOST", "rethink")
	t.Setenv("RDB_PORT", "28016")
	t.Setenv("RDB_DB", "legacy")

	cfg, err := loadEnv()
	require.NoError(t, err)
	assert.Equal(t, "rethink", cfg.DB.Host)
	assert.Equal(t, 28016, cfg.DB.Port)
	assert.Equal(t, "legacy", cfg.DB.Name)

	t.Setenv("DB_HOST", "preferred")
	cfg, err = loadEnv()
	require.NoError(t, err)
	assert.Equal(t, "preferred", cfg.DB.Host)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "postgres"}},
		{"port out of range", map[string]string{"DB_PORT": "70000"}},
		{"zero port", map[string]string{"DB_PORT": "0"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadEnv()
			assert.Error(t, err)
		})
	}
}

func TestBadgerNeedsNoHost(t *testing.T) {
	cfg := &Config{
		DB:       DBConfig{Driver: DriverBadger, Port: 1, Name: "blogger", ConnectTimeout: time.Second},
		LogLevel: "info",
	}
	assert.NoError(t, cfg.Validate())

	cfg.DB.Driver = DriverMongo
	assert.Error(t, cfg.Validate())
}
