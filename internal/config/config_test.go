package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.HTTPAddr())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "/tmp/uploads", cfg.Upload.Dir)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "photo.uploaded", cfg.RabbitMQ.PhotoEventQueue)
}

func TestLoadFileThenEnv(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
port = 9000

[database]
driver = "sqlite"
path = "/var/lib/holoframe.db"

[upload]
dir = "/srv/uploads"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("UPLOAD_DIR", "/data/uploads")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "/var/lib/holoframe.db", cfg.DSN())
	assert.Equal(t, "/data/uploads", cfg.Upload.Dir)
	assert.True(t, cfg.Redis.Enabled)
}

func TestDSN(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "root:@tcp(127.0.0.1:3306)/holoframe?parseTime=true&loc=UTC&charset=utf8mb4", cfg.DSN())

	cfg.Database.Driver = "postgres"
	cfg.Database.Port = 5432
	cfg.Database.Params = "sslmode=disable"
	assert.Equal(t, "host=127.0.0.1 port=5432 user=root password= dbname=holoframe sslmode=disable", cfg.DSN())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
