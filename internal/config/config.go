package config

import (
	"os"
	"path/filepath"
)

// StoreConfig holds DynamoDB document store settings.
// Table is the one required value; it is checked lazily by the connection
// manager on first use, not at startup.
type StoreConfig struct {
	Table    string
	Region   string
	Endpoint string // optional override, e.g. DynamoDB Local
}

// UploadConfig holds settings for the upload directory. Files written there
// are ephemeral: the hosting platform may reclaim the directory at any time
// and nothing survives a redeploy.
type UploadConfig struct {
	Dir string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Store   StoreConfig
	Upload  UploadConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Store: StoreConfig{
			Table:    getEnv("ANSWERS_TABLE", ""),
			Region:   getEnv("AWS_REGION", ""),
			Endpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "answer-uploads")),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
