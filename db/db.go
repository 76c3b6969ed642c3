package db

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gamegalaxy/exchange/models"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=gamegalaxy sslmode=disable"
	}

	var openErr error
	DB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if openErr != nil {
		log.Fatal("failed to connect to the database:", openErr)
	}

	migrateErr := DB.AutoMigrate(
		&models.User{},
		&models.Platform{},
		&models.Game{},
		&models.Wishlist{},
		&models.Review{},
		&models.SellerInventory{},
	)
	if migrateErr != nil {
		log.Fatal("failed to migrate:", migrateErr)
	}

	seedPlatforms()

	log.Println("Database connected and migrated")
}

// seedPlatforms inserts the static platform reference data once.
func seedPlatforms() {
	var count int64
	DB.Model(&models.Platform{}).Count(&count)
	if count > 0 {
		return
	}
	platforms := []models.Platform{
		{Name: "PC"},
		{Name: "PlayStation 4"},
		{Name: "PlayStation 5"},
		{Name: "Xbox One"},
		{Name: "Xbox Series X"},
		{Name: "Nintendo Switch"},
	}
	if err := DB.Create(&platforms).Error; err != nil {
		log.Println("failed to seed platforms:", err)
	}
}
