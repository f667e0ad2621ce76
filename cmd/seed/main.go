package main

import (
	"log"
	"os"

	"vetcare-be/internal/model"
	"vetcare-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedAccount struct {
	FirstName string
	LastName  string
	Email     string
	ContactNo string
	Role      string
	Password  string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding clinic accounts...")

	accounts := []seedAccount{
		{"Alice", "Reyes", "admin@vetcare.local", "0917-000-0001", "Admin", "admin-password"},
		{"Ben", "Cruz", "staff@vetcare.local", "0917-000-0002", "Staff", "staff-password"},
		{"Carla", "Santos", "client@vetcare.local", "0917-000-0003", "Client", "client-password"},
	}

	for _, account := range accounts {
		if err := seedUser(db, account); err != nil {
			color.Red("Failed to seed %s: %v", account.Email, err)
			continue
		}
		color.Green("Seeded %s (%s)", account.Email, account.Role)
	}

	color.Cyan("Done.")
}

func seedUser(db *gorm.DB, account seedAccount) error {
	var existing int64
	if err := db.Model(&model.User{}).Where("email = ?", account.Email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		color.Yellow("Skipping %s, already present", account.Email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashString := string(hash)

	return db.Create(&model.User{
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Email:        account.Email,
		ContactNo:    account.ContactNo,
		Role:         account.Role,
		PasswordHash: &hashString,
		IsActive:     true,
	}).Error
}
