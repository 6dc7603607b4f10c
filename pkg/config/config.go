package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppName      string
	Port         string
	StoreDriver  string
	DatabaseURL  string
	SQLitePath   string
	JWTSecret    string
	TokenTTL     time.Duration
	SeedMockData bool
	AdminEmail   string
	AdminPass    string
}

// Load reads .env (if present) and then the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment with defaults
func FromEnv() *Config {
	return &Config{
		AppName:      getEnv("APP_NAME", "AI Worker Console v1.0"),
		Port:         getEnv("PORT", "3000"),
		StoreDriver:  getEnv("STORE_DRIVER", DriverMemory),
		DatabaseURL:  postgresDSN(),
		SQLitePath:   getEnv("SQLITE_PATH", ":memory:"),
		JWTSecret:    getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		TokenTTL:     time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		SeedMockData: getEnvBool("SEED_MOCK_DATA", true),
		AdminEmail:   getEnv("ADMIN_EMAIL", "admin@aiworker.local"),
		AdminPass:    getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	if os.Getenv("DB_HOST") == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Seoul",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
