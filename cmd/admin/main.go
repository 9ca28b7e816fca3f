// Package main provides staff management utilities for Mosaic.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"mosaic/internal/config"
	"mosaic/internal/database"
	"mosaic/internal/models"
	"mosaic/internal/service"
	"mosaic/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go create <email> <password>  - Create a superuser account")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>          - Promote user to staff")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>           - Demote user from staff")
		fmt.Println("  go run ./cmd/admin/main.go list-staff                 - List all staff users")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin/main.go create <email> <password>")
			os.Exit(1)
		}
		createSuperuser(db, os.Args[2], os.Args[3])

	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <user_id>")
			os.Exit(1)
		}
		promoteToStaff(db, os.Args[2])

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <user_id>")
			os.Exit(1)
		}
		demoteFromStaff(db, os.Args[2])

	case "list-staff":
		listStaff(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

// createSuperuser makes a verified staff+superuser account, analogous to the
// usual framework createsuperuser command.
func createSuperuser(db *gorm.DB, email, password string) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		log.Fatalf("Invalid email: %v", err)
	}
	if err := validation.ValidatePassword(password, password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Email:       email,
		Password:    string(hashed),
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
		Profile: &models.Profile{
			VerifiedEmail: true,
			VerifiedCode:  service.GenerateVerificationCode(),
		},
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	fmt.Printf("Successfully created superuser %s (ID: %d)\n", user.Email, user.ID)
}

func promoteToStaff(db *gorm.DB, userID string) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsStaff {
		fmt.Printf("User %s (ID: %d) is already staff\n", user.Email, user.ID)
		return
	}

	user.IsStaff = true
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}

	fmt.Printf("Successfully promoted %s (ID: %d) to staff\n", user.Email, user.ID)
}

func demoteFromStaff(db *gorm.DB, userID string) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if !user.IsStaff {
		fmt.Printf("User %s (ID: %d) is not staff\n", user.Email, user.ID)
		return
	}

	user.IsStaff = false
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to demote user: %v", err)
	}

	fmt.Printf("Successfully demoted %s (ID: %d) from staff\n", user.Email, user.ID)
}

func listStaff(db *gorm.DB) {
	var staff []models.User
	if err := db.Where("is_staff = ?", true).Find(&staff).Error; err != nil {
		log.Fatalf("Failed to fetch staff: %v", err)
	}

	if len(staff) == 0 {
		fmt.Println("No staff users found in the system")
		return
	}

	fmt.Println("\nCurrent staff:")
	for _, u := range staff {
		fmt.Printf("ID: %d | Email: %s | Superuser: %v\n", u.ID, u.Email, u.IsSuperuser)
	}
}
