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

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "./uploads", cfg.Storage.LocalDir)
	assert.Equal(t, "Nos", cfg.SWConnect.DefaultUOM)
	assert.Equal(t, "DESIGN - PMTPL", cfg.SWConnect.DesignDepartment)
	assert.Equal(t, DefaultAllowedDepartments, cfg.SWConnect.AllowedDepartments)
	assert.Equal(t, 5*time.Second, cfg.SWConnect.LockWait)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/sw.db")
	t.Setenv("REDIS_HOST", "redis.local")
	t.Setenv("SWCONNECT_DEFAULT_UOM", "Kg")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/sw.db", cfg.Database.Path)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "Kg", cfg.SWConnect.DefaultUOM)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0755))
	yaml := []byte(`
server:
  port: 9090
swconnect:
  design_department: "DESIGN - ACME"
  allowed_departments:
    - "QA - ACME"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), yaml, 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "DESIGN - ACME", cfg.SWConnect.DesignDepartment)
	assert.Equal(t, []string{"QA - ACME"}, cfg.SWConnect.AllowedDepartments)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
