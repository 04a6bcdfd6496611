package migration

import (
	"food-tracker/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"category", &entities.Category{}},
		{"food", &entities.Food{}},
		{"usage log", &entities.UsageLog{}},
		{"donation center", &entities.DonationCenter{}},
		{"donation offer", &entities.DonationOffer{}},
		{"donation offer item", &entities.DonationOfferItem{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	log.Println("Database migration complete")
	return nil
}
