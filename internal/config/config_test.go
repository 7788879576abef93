package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndRequired(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "portal.db")
	t.Setenv("AUTHZ_URL", "http://authorizer:8080")
	t.Setenv("AUTHZ_CLIENT_ID", "client")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "pl", cfg.DefaultLocale)
	assert.Equal(t, 10, cfg.DBConnectionLimit)
	assert.True(t, cfg.IsSQLite())
	assert.False(t, cfg.BotProtectionEnabled())
}

func TestLoadRequiresDatabaseUserForServers(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_DATABASE", "portal")
	t.Setenv("DB_USER", "")
	t.Setenv("AUTHZ_URL", "http://authorizer:8080")
	t.Setenv("AUTHZ_CLIENT_ID", "client")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "DB_TYPE=sqlite-pure\nDB_DATABASE=file.db\nAUTHZ_URL=http://a\nAUTHZ_CLIENT_ID=c\nTURNSTILE_SECRET_KEY=secret\nDB_CONNECTION_LIMIT=nope\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("ENV_FILE", envFile)
	for _, key := range []string{"DB_TYPE", "DB_DATABASE", "AUTHZ_URL", "AUTHZ_CLIENT_ID", "TURNSTILE_SECRET_KEY", "DB_CONNECTION_LIMIT"} {
		key := key
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite-pure", cfg.DBType)
	assert.Equal(t, "file.db", cfg.DBDatabase)
	assert.True(t, cfg.BotProtectionEnabled())
	assert.Equal(t, 10, cfg.DBConnectionLimit, "invalid integers fall back to the default")
}
