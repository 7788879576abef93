package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/database"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	out, err := run(t, "convert", "10", "cao", "CaCO3")
	require.NoError(t, err)
	assert.Equal(t, "10 CaO = 17.9 CaCO3\n", out)

	out, err = run(t, "convert", "2,5", "P2O5", "P")
	require.NoError(t, err)
	assert.Equal(t, "2.5 P2O5 = 1.09 P\n", out)

	_, err = run(t, "convert", "ten", "CaO", "CaCO3")
	assert.Error(t, err)
	_, err = run(t, "convert", "1", "CaO", "K")
	assert.Error(t, err)
}

func TestLimingCommand(t *testing.T) {
	out, err := run(t, "liming", "--ph", "4.8", "--soil", "medium", "--area", "10", "--price", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "CaO need:      4.50 t/ha")
	assert.Contains(t, out, "product dose:  9.00 t/ha")
	assert.Contains(t, out, "total cost:    18000.00")

	out, err = run(t, "liming", "--ph", "6.8", "--soil", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "no liming needed")

	_, err = run(t, "liming", "--soil", "light")
	assert.Error(t, err, "--ph is required")
}

func TestDatabaseCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_TYPE", "sqlite-pure")
	t.Setenv("DB_DATABASE", path)
	t.Setenv("AUTHZ_URL", "http://authorizer.invalid")
	t.Setenv("AUTHZ_CLIENT_ID", "test")
	t.Setenv("LOG_LEVEL", "silent")

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 liming products, 0 fertilization products, 0 images")

	_, err = run(t, "role", "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign in")

	cfg := &config.Config{DBType: "sqlite-pure", DBDatabase: path, LogLevel: "silent"}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Profile{ID: "user-1", Email: "farmer@example.com", Role: models.RoleUser}).Error)
	require.NoError(t, database.Close(db))

	out, err = run(t, "role", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1 (farmer@example.com) is now admin\n", out)

	_, err = run(t, "role", "user-1", "--role", "owner")
	assert.Error(t, err)
}
