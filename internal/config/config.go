package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sncandles/storefront/internal/hash"
	"github.com/sncandles/storefront/internal/models"
)

type Config struct {
	ServerPort   int
	DatabaseURL  string
	JWTSecret    string
	KafkaBrokers []string
	ESURL        string
	ESUser       string
	ESPassword   string
	ESIndex      string
	LogLevel     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    EnvDefault("JWT_SECRET", "dev-secret"),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
		ESIndex:      EnvDefault("ES_INDEX", "products"),
		LogLevel:     EnvDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// InitDB opens Postgres when DATABASE_URL is set, otherwise an in-memory
// SQLite database. The in-memory default is intentional: users, subscriptions
// and the catalog live only as long as the process, like the mock store this
// service grew out of.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.ContactMessage{},
		&models.Product{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedAdmin recreates the mock store's default account. The password is only
// ever stored as a bcrypt hash.
func seedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "admin@sncandles.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	pwHash, err := hash.HashPassword(EnvDefault("ADMIN_PASSWORD", "password123"))
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := models.User{
		Name:         "Admin User",
		Email:        "admin@sncandles.com",
		PasswordHash: pwHash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
