package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Values come from environment
// variables (a .env file is loaded into the process environment by main).
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	// AdminEmails is the fixed allow-list deciding the admin role. It is
	// injected configuration, never a literal duplicated across surfaces.
	AdminEmails []string

	StorageDir     string
	StorageBaseURL string
}

// Load reads configuration from the environment via viper.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORAGE_DIR", "data/blobs")
	v.SetDefault("STORAGE_BASE_URL", "/files")

	cfg := &Config{
		Port:           v.GetString("PORT"),
		DBHost:         v.GetString("DB_HOST"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBPort:         v.GetString("DB_PORT"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		KafkaBroker:    v.GetString("KAFKA_BROKER"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		StorageDir:     v.GetString("STORAGE_DIR"),
		StorageBaseURL: v.GetString("STORAGE_BASE_URL"),
	}

	for _, email := range strings.Split(v.GetString("ADMIN_EMAILS"), ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, email)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set in environment or .env file")
	}
	if len(cfg.AdminEmails) == 0 {
		return nil, errors.New("ADMIN_EMAILS must list at least one admin address")
	}

	return cfg, nil
}
