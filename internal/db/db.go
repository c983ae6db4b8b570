package db

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"grove/internal/models"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=grove port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedGroups()
}

// Migrate creates or updates the schema for every entity.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
}

func seedGroups() {
	var count int64
	DB.Model(&models.Group{}).Count(&count)
	if count > 0 {
		log.Println("Groups already seeded, skipping")
		return
	}

	groups := []models.Group{
		{Title: "Tech", Description: "Programming, tools and everything around them"},
		{Title: "Life", Description: "Day-to-day notes and experience"},
		{Title: "Showcase", Description: "Projects and work worth showing off"},
		{Title: "Random", Description: "Anything that fits nowhere else"},
	}

	for _, group := range groups {
		if err := DB.Create(&group).Error; err != nil {
			log.Printf("Failed to create group %s: %v", group.Title, err)
		}
	}
	log.Println("Initial groups created successfully")
}
