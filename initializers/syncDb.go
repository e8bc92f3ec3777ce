package initializers

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	log.Println("Database synced successfully.")
	return nil
}
