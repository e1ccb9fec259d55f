package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	StripeSecretKey string
}

// Load reads an optional .env file and then the environment. Missing .env
// is not an error; a deployment may provide plain env vars.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", ""),
		DBName:          getEnv("DB_NAME", "manufacturer_db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
	}
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGO_URI not set in environment variables")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET not set in environment variables")
	}
	if c.StripeSecretKey == "" {
		return errors.New("STRIPE_SECRET_KEY not set in environment variables")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
