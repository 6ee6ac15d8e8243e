package utils

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every secret and external endpoint the process needs. It is
// built once in main and read by reference everywhere else; handlers never
// touch the environment directly.
type Config struct {
	Port string

	DBConnectionString string
	RedisURL           string
	RedisPassword      string

	AccessTokenSecret  string
	RefreshTokenSecret string

	AdminEmail    string
	AdminPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	AssistantURL     string
	AssistantTimeout time.Duration
}

var Cfg *Config

func LoadConfig() *Config {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	cfg := &Config{
		Port:               getEnv("PORT", "4000"),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    os.Getenv("CLOUDINARY_FOLDER"),

		AssistantURL:     os.Getenv("ASSISTANT_SERVICE_URL"),
		AssistantTimeout: 8 * time.Second,
	}

	Cfg = cfg
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
