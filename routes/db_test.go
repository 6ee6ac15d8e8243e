package routes

import (
	"testing"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points storage.DB at a throwaway in-memory database so handler
// tests can walk their full storage paths. The database is named after the
// test so tests never see each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Event{},
		&models.Guest{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	storage.DB = db
	utils.Cfg = &utils.Config{
		AccessTokenSecret:  "access-test-secret",
		RefreshTokenSecret: "refresh-test-secret",
	}
	return db
}
