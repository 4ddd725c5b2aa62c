package migration

import (
	"fmt"
	"log"

	"Receipt-Carbon-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CarbonEntry{}); err != nil {
		log.Fatalf("Error migrating carbon entry database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodEntryItem{}, &entities.ShoppingEntryItem{}, &entities.TravelEntryItem{}); err != nil {
		log.Fatalf("Error migrating entry item databases: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ReceiptImage{}); err != nil {
		log.Fatalf("Error migrating receipt image database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
