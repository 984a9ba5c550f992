package config

import (
	"fmt"
	"os"

	"github.com/larswik/gigdex/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

// APIKeys holds the credentials for the two upstream services used by the
// ingestion job. Neither is needed by the API server.
type APIKeys struct {
	OpenCage     string
	Ticketmaster string
}

func LoadAPIKeys() (*APIKeys, error) {
	return &APIKeys{
		OpenCage:     os.Getenv("OPENCAGE_API_KEY"),
		Ticketmaster: os.Getenv("TICKETMASTER_API_KEY"),
	}, nil
}

// InitDatabase opens the connection and ensures the events table exists.
// AutoMigrate is a no-op once the schema is in place, so repeated startups
// are safe. TranslateError maps unique-constraint violations onto
// gorm.ErrDuplicatedKey, which the store relies on for dedup.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Event{}); err != nil {
		return nil, err
	}

	return db, nil
}
