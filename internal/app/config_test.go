package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":9999"

[database]
dsn = "redis://localhost:6379/0"

[protection]
blocked_chords = ["F12", "Ctrl+C"]

[gsheet.1024]
credentials_path = "creds.json"
schedule = "0 * * * *"
sheet_id = "abc"
sheet_name = "results"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", config.Server.Port)
	assert.Equal(t, "redis://localhost:6379/0", config.Database.DSN)
	assert.Equal(t, "./migrations", config.Database.MigrationsDir, "default migrations dir")
	assert.Equal(t, []string{"F12", "Ctrl+C"}, config.Protection.BlockedChords)
	require.Contains(t, config.GSheet, "1024")
	assert.Equal(t, "0 * * * *", config.GSheet["1024"].Schedule)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":8080"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file://./data", config.Database.DSN)
	assert.Empty(t, config.Protection.BlockedChords, "empty list falls back to policy defaults")
}

func TestLoadConfig_RequiresPort(t *testing.T) {
	path := writeConfig(t, `
[database]
dsn = "semla.db"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
