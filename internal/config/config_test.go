package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 90, cfg.Stats.MaxRangeDays)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.AMQP.URL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/app")
	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("STATS_MAX_RANGE_DAYS", "31")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DB.GetDSN())
	assert.True(t, cfg.Auth.SkipAuth)
	assert.Equal(t, 31, cfg.Stats.MaxRangeDays)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=7000\nDB_NAME=from_dotenv\n"), 0o600))
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	chdir(t, nested)

	t.Setenv("HTTP_PORT", "9191")
	// registered so the value loaded from .env is removed after the test
	t.Setenv("DB_NAME", "")
	require.NoError(t, os.Unsetenv("DB_NAME"))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.HTTPPort)
	assert.Equal(t, "from_dotenv", cfg.DB.Name)
}

func TestLoadConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "budgeteer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats:\n  max_range_days: 45\namqp:\n  exchange: custom\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Stats.MaxRangeDays)
	assert.Equal(t, "custom", cfg.AMQP.Exchange)
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", cfg.GetDSN())
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", cfg.URL())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
