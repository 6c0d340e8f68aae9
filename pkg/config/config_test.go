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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "session_secret: s3cret\ndb_path: /tmp/test.sqlite3\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, "/tmp/test.sqlite3", cfg.DBPath)
	assert.Equal(t, DefaultSessionStore, cfg.SessionStore)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort)
	assert.Equal(t, DefaultSessionLifetime, cfg.SessionLifetime)
	assert.Equal(t, DefaultQuoteTimeout, cfg.QuoteTimeout)
	assert.Equal(t, DefaultSeedUsername, cfg.SeedUsername)
	assert.Equal(t, path, cfg.ConfigPath)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "session_secret: from-file\n")
	t.Setenv("TODOLIST_SESSION_SECRET", "from-env")
	t.Setenv("TODOLIST_API_PORT", "9000")
	t.Setenv("TODOLIST_SESSION_LIFETIME", "2h")
	t.Setenv("TODOLIST_DEV_MODE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, 2*time.Hour, cfg.SessionLifetime)
	assert.True(t, cfg.IsDevMode())
}

func TestLoad_DefaultPathIsOptional(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODOLIST_SESSION_SECRET", "env-only")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.SessionSecret)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TODOLIST_SESSION_SECRET=dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TODOLIST_SESSION_SECRET") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.SessionSecret)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODOLIST_SESSION_SECRET", "x")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			SessionSecret:   "s",
			DBPath:          "db",
			SessionStore:    "sqlite",
			JWTAlgorithm:    "HS256",
			APIPort:         5000,
			SessionLifetime: time.Hour,
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.SessionSecret = "" }, expectErr: true},
		{name: "missing db path", mutate: func(c *Config) { c.DBPath = "" }, expectErr: true},
		{name: "unknown store", mutate: func(c *Config) { c.SessionStore = "memcached" }, expectErr: true},
		{name: "redis without url", mutate: func(c *Config) { c.SessionStore = "redis" }, expectErr: true},
		{name: "redis with url", mutate: func(c *Config) { c.SessionStore = "redis"; c.RedisURL = "localhost:6379" }},
		{name: "bad algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "RS256" }, expectErr: true},
		{name: "bad port", mutate: func(c *Config) { c.APIPort = 70000 }, expectErr: true},
		{name: "zero lifetime", mutate: func(c *Config) { c.SessionLifetime = 0 }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
