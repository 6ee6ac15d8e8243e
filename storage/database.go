package storage

import (
	"log"

	"eventbuddy-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB(dsn string) *gorm.DB {
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connecting to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Event{},
		&models.Guest{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
		&models.AuditLog{},
	)
}

func InitializeDB(dsn string) *gorm.DB {
	db := connectToDB(dsn)
	performMigrations(db)
	return db
}
