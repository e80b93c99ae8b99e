package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	MongoURI       string
	MongoDBName    string
	RedisURL       string
	JWTSecret      string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string
	EmailFrom      string
	TMDBAPIKey     string
	AllowedOrigins string
}

// LoadConfig reads the environment, optionally seeded from a .env file.
// MongoURI and RedisURL are optional: without them the service runs on the
// in-memory store with caching and token revocation disabled.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "5001"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "industry_lens"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      getEnv("JWT_SECRET", "industry-lens-secret-key-2024"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		EmailFrom:      getEnv("EMAIL_FROM", "Industry Lens <noreply@industrylens.com>"),
		TMDBAPIKey:     os.Getenv("TMDB_API_KEY"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
