package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	DBPath       string
	SupabaseURL  string
	SupabaseKey  string
	OpenAIAPIKey string
}

var AppConfig *Config

// Load reads the environment. Everything is optional: without Supabase
// credentials the local engine serves, and without an OpenAI key the AI
// gateway runs in mock mode.
func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:         GetEnv("PORT", "8000"),
		Env:          GetEnv("ENV", "development"),
		DBPath:       GetEnv("DB_PATH", "./data/media-journal.db"),
		SupabaseURL:  GetEnv("SUPABASE_URL", ""),
		SupabaseKey:  GetEnv("SUPABASE_KEY", ""),
		OpenAIAPIKey: GetEnv("OPENAI_API_KEY", ""),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
