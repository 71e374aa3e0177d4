package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Migrate creates or updates the item and recipe tables.
func Migrate(db *gorm.DB) error {
	log.Printf("Running GORM auto-migration on %s", db.Dialector.Name())
	if err := db.AutoMigrate(&itemRecord{}, &recipeRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
