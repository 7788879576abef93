package database

import (
	"testing"

	"github.com/agrolime/limeportal/data"
	"github.com/agrolime/limeportal/internal/config"
	"github.com/agrolime/limeportal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndSeed(t *testing.T) {
	for _, dbType := range []string{"sqlite", "sqlite-pure"} {
		t.Run(dbType, func(t *testing.T) {
			cfg := &config.Config{DBType: dbType, DBDatabase: ":memory:", DBConnectionLimit: 4, LogLevel: "silent"}
			db, err := Connect(cfg)
			require.NoError(t, err)
			defer Close(db)

			require.NoError(t, AutoMigrate(db))

			res, err := SeedCatalog(db, data.SeedCatalog)
			require.NoError(t, err)
			assert.Equal(t, 3, res.LimingProducts)
			assert.Equal(t, 3, res.FertilizationProducts)
			assert.Equal(t, 2, res.PortalImages)

			var products []models.LimingProduct
			require.NoError(t, db.Order("sort_order").Find(&products).Error)
			require.Len(t, products, 3)
			assert.True(t, products[0].Active)
			assert.Len(t, products[0].ID, 36)

			// second run leaves populated tables alone
			res, err = SeedCatalog(db, data.SeedCatalog)
			require.NoError(t, err)
			assert.Zero(t, res.LimingProducts)
		})
	}
}

func TestSeedCatalogRejectsBadYAML(t *testing.T) {
	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:", LogLevel: "silent"}
	db, err := Connect(cfg)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, AutoMigrate(db))

	_, err = SeedCatalog(db, []byte("liming_products: [::"))
	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.Error(t, err)

	for _, dbType := range []string{"mysql", "mariadb", "postgres", "sqlserver"} {
		d, err := Dialector(&config.Config{DBType: dbType, DBHost: "db", DBPort: "1", DBDatabase: "portal", DBUser: "u"})
		require.NoError(t, err, dbType)
		assert.NotNil(t, d)
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(&config.Config{DBHost: "db", DBPort: "3306", DBDatabase: "portal", DBUser: "app", DBPassword: "secret"})
	assert.Contains(t, dsn, "app:secret@tcp(db:3306)/portal")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
