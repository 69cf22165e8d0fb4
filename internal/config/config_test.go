package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestMustLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
env: prod
http_server:
  address: "0.0.0.0:9000"
storage:
  backend: sqlite
  path: "students.db"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPServer.Addr)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "students.db", cfg.Storage.Path)
}

func TestMustLoadDefaults(t *testing.T) {
	path := writeConfig(t, "env: dev\n")
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:8082"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_SERVER_ADDR", "localhost:9999")

	cfg := MustLoad()

	assert.Equal(t, "localhost:9999", cfg.HTTPServer.Addr)
}
