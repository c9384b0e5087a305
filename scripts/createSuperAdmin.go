package main

import (
	"flag"
	"log"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/models"

	"golang.org/x/crypto/bcrypt"
)

// Bootstraps the first super admin account. Run once after the initial
// deployment:
//
//	go run ./scripts -email root@example.com -password changeme -name "Root"
func main() {
	email := flag.String("email", "", "email address of the super admin")
	password := flag.String("password", "", "initial password")
	name := flag.String("name", "Super Admin", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	var existing models.User
	if err := db.Where("email = ? AND is_deleted = false", *email).First(&existing).Error; err == nil {
		log.Fatalf("An account with email %s already exists (id %d)", *email, existing.ID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:     *name,
		Email:    *email,
		Password: string(hash),
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create super admin: %v", err)
	}

	log.Printf("Super admin created: %s (id %d)", user.Email, user.ID)
}
