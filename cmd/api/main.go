package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/server"
	"ai-worker-console/pkg/config"
	"ai-worker-console/pkg/database"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Stores
	stores := repository.NewMemoryStores()
	if cfg.StoreDriver != config.DriverMemory {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
		}
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			log.Fatalf("Failed to migrate: %v", err)
		}
		stores = repository.NewGormStores(db)
	}

	// 3. Seed mock data and the admin account
	if err := server.Bootstrap(cfg, stores); err != nil {
		log.Printf("Warning: Failed to seed stores: %v", err)
	}

	// 4. Wire services, handlers and routes
	srv := server.New(cfg, stores, server.Options{})
	go srv.Hub.Run()

	// 5. Graceful Shutdown
	go func() {
		if err := srv.App.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.App.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	srv.Hub.Stop()

	log.Println("Server exited")
}
