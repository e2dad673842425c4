package migration

import (
	"fmt"
	"log"

	"github.com/Goutham-IITJ/Project-Raseed/entities"
	"gorm.io/gorm"
)

// Migrate creates the static tables. The per-user invoice and line-item
// tables are not migrated here; the receipt repository creates them lazily
// the first time a user writes.
func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
