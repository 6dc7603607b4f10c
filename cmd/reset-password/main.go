package main

import (
	"flag"
	"log"

	"ai-worker-console/internal/model"
	"ai-worker-console/pkg/config"
	"ai-worker-console/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	email := flag.String("email", cfg.AdminEmail, "email of the console user")
	newPassword := flag.String("password", cfg.AdminPass, "new password (min 6 characters)")
	flag.Parse()

	if len(*newPassword) < 6 {
		log.Fatal("❌ Password must be at least 6 characters")
	}
	if cfg.StoreDriver == config.DriverMemory {
		log.Fatal("❌ STORE_DRIVER=memory keeps no users between runs; set sqlite or postgres")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 3. Find User
	var user model.User
	if err := db.Where("LOWER(email) = LOWER(?)", *email).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s (%s) has been reset", user.Name, user.Email)
}
