package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings, read from the environment with an
// optional .env file for local development.
type Config struct {
	Addr    string
	DBPath  string
	LogFile string

	VisionBaseURL string
	VisionAPIKey  string
	VisionModel   string
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("CARSTOCK_ADDR", ":8080"),
		DBPath:        getEnv("CARSTOCK_DB", "carstock.db"),
		LogFile:       getEnv("CARSTOCK_LOG_FILE", ""),
		VisionBaseURL: getEnv("CARSTOCK_VISION_URL", ""),
		VisionAPIKey:  getEnv("CARSTOCK_VISION_KEY", ""),
		VisionModel:   getEnv("CARSTOCK_VISION_MODEL", "gpt-4o-mini"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
