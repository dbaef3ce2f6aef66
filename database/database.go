package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/congress-app/congress-backend/models"
)

// Connect opens the Postgres connection from DB_CONNECTION_STRING.
// TranslateError is on so duplicate-key inserts surface as
// gorm.ErrDuplicatedKey, which the store layer relies on.
func Connect() *gorm.DB {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Panic("error connecting to db: " + err.Error())
	}
	return db
}

// Migrate creates the enum types and tables the backend needs.
func Migrate(db *gorm.DB) error {
	// Create participant_role ENUM type if it doesn't exist
	db.Exec(`DO $$ BEGIN
		CREATE TYPE participant_role AS ENUM ('admin', 'participant');
	EXCEPTION
		WHEN duplicate_object THEN null;
	END $$;`)

	return db.AutoMigrate(
		&models.Badge{},
		&models.Participant{},
		&models.Event{},
		&models.AttendanceRecord{},
		&models.EventAttendee{},
	)
}

// SeedBadges upserts the milestone configuration into the badges table so
// the many2many join rows always have their targets.
func SeedBadges(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "requirement"}),
	}).Create(&models.Milestones).Error
}
