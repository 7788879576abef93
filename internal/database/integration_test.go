package database

import (
	"context"
	"testing"
	"time"

	"github.com/agrolime/limeportal/data"
	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestWithPostgreSQL runs migrations and seeding against a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pgPort := nat.Port("5432/tcp")

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_USER":     "portal",
				"POSTGRES_PASSWORD": "portal",
				"POSTGRES_DB":       "portal",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Docker not available: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, pgPort)
	require.NoError(t, err)

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "portal",
		DBUser:            "portal",
		DBPassword:        "portal",
		DBConnectionLimit: 4,
		LogLevel:          "silent",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))

	_, err = SeedCatalog(db, data.SeedCatalog)
	require.NoError(t, err)

	profile := models.Profile{ID: "auth-user-1", Email: "rolnik@example.com"}
	require.NoError(t, db.Create(&profile).Error)

	var stored models.Profile
	require.NoError(t, db.First(&stored, "id = ?", profile.ID).Error)
	assert.Equal(t, models.RoleUser, stored.Role, "role column defaults to user")

	usage := models.CalculatorUsage{Calculator: "convert"}
	usage.Inputs, err = models.NewJSON(map[string]interface{}{"value": 10})
	require.NoError(t, err)
	require.NoError(t, db.Create(&usage).Error)

	var loaded models.CalculatorUsage
	require.NoError(t, db.First(&loaded, usage.ID).Error)
	assert.JSONEq(t, `{"value":10}`, string(loaded.Inputs.JSON))
}
