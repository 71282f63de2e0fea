package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEmbeddedMigrationsRegistered(t *testing.T) {
	require.GreaterOrEqual(t, len(migrations), 2)

	first := migrations[0]
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "user_search_vector", first.Name)
	assert.Contains(t, first.UpScript, "tsvector")
	assert.Contains(t, first.DownScript, "DROP")

	// AutoMigrate is off in production, so the relation pair's unique
	// constraint has to be provisioned by SQL as well.
	second := migrations[1]
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, "relations_unique", second.Name)
	assert.Contains(t, second.UpScript, "UNIQUE INDEX")
	assert.Contains(t, second.UpScript, "idx_relation_users")
	assert.Contains(t, second.DownScript, "DROP")

	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].Version, migrations[i-1].Version, "migrations must be ordered")
	}
}

func TestRunMigrationsSkipsNonPostgres(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))

	// The Postgres-only scripts must not have run against sqlite.
	assert.False(t, db.Migrator().HasTable("schema_migrations"))
}
