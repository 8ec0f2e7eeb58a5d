package Models

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the embedded SQLite database and runs migrations. Standalone
// reference data migrates first, then the record and operational tables.
func Connect(dbPath string) error {
	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = connection

	if err := DB.AutoMigrate(
		&User{},
		&Driver{},
		&Workshop{},
	); err != nil {
		return err
	}

	if err := DB.AutoMigrate(
		&Inspection{},
		&RequestLog{},
	); err != nil {
		return err
	}

	log.Println("Database connected:", dbPath)
	return nil
}
