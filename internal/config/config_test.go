package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdempoker-server/internal/util"
)

func TestLoad_defaults(t *testing.T) {
	a := assert.New(t)

	restore := util.SetEnv("HOLDEM_CONFIG_FILE", filepath.Join(t.TempDir(), "no-such-file.yaml"))
	defer restore()

	a.NoError(Load())
	a.Equal("postgres://postgres@localhost:5432/postgres?sslmode=disable", config.PGDSN)
	a.Equal("./sql", config.MigrationsPath)
	a.Equal(60, config.PlayerCreateDelay)
}

func TestLoad_fileAndEnvOverride(t *testing.T) {
	a := assert.New(t)

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	contents := "pgDsn: postgres://file-dsn\nlog:\n  level: debug\n"
	a.NoError(os.WriteFile(configFile, []byte(contents), 0644))

	restoreFile := util.SetEnv("HOLDEM_CONFIG_FILE", configFile)
	defer restoreFile()

	restoreDSN := util.SetEnv("HOLDEM_PG_DSN", "postgres://env-dsn")
	defer restoreDSN()

	a.NoError(Load())

	// the environment wins over the file
	a.Equal("postgres://env-dsn", config.PGDSN)
	a.Equal("debug", config.Log.Level)
}
