package database

import (
	"log"

	"bilty-backend/internal/config"
	"bilty-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.Party{},
		&models.RateContract{},
		&models.NumberSequence{},
		&models.Bilty{},
		&models.Challan{},
		&models.ChallanItem{},
		&models.LedgerEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
}
