package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, ":3001", cfg.ListenAddr)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "sqlite", cfg.KVDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "Development")
	t.Setenv("KV_DRIVER", "badger")
	t.Setenv("CORS_ORIGINS", "https://ogevents.pl, ,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "badger", cfg.KVDriver)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://ogevents.pl", "http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadKeepsExplicitListenAddr(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:4000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.ListenAddr)
}

func TestResolveJoinsRelativePathsOntoRoot(t *testing.T) {
	cfg := AppConfig{RootDir: "/srv/ogevents"}

	assert.Equal(t, "/srv/ogevents/dist", cfg.Resolve("dist"))
	assert.Equal(t, "/var/www/dist", cfg.Resolve("/var/www/dist"))
	assert.Equal(t, "", cfg.Resolve(""))
}
