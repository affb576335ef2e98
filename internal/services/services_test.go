package services

import (
	"context"
	"testing"

	"github.com/moodlog/api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Mood{},
		&models.Activity{},
		&models.Entry{},
		&models.EntryActivity{},
		&models.EntryImage{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// registerTestUser creates an account and returns its id.
func registerTestUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	user, err := Register(context.Background(), db, email, "hunter2!")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	return user.ID
}
