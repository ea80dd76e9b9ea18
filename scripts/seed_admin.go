package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
)

// Seeds the first super_admin account. Usage:
//
//	ADMIN_EMAIL=... ADMIN_PASSWORD=... go run scripts/seed_admin.go
func main() {
	storage.InitializeDB()

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	var existing models.AdminUser
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Fatalf("admin %s already exists", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := models.AdminUser{
		Email:    email,
		Password: string(hashed),
		Role:     "super_admin",
	}
	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("Created super_admin %s (id %d)\n", admin.Email, admin.ID)
}
