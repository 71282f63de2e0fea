package service

import (
	"testing"

	"threaded/internal/database"
	"threaded/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

type testEnv struct {
	db        *gorm.DB
	auth      *AuthService
	users     *UserService
	relations *RelationService
	threads   *ThreadService
	images    *ImageService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	imageRepo := repository.NewImageRepository(db)

	relations := NewRelationService(relationRepo, userRepo)
	return &testEnv{
		db:        db,
		auth:      NewAuthService(userRepo),
		users:     NewUserService(userRepo),
		relations: relations,
		threads:   NewThreadService(threadRepo, userRepo),
		images:    NewImageService(imageRepo, userRepo),
		dashboard: NewDashboardService(userRepo, threadRepo, imageRepo, relations),
	}
}
