package config

import "os"

// Config holds the environment-driven settings for the API process.
type Config struct {
	DBPath     string
	Port       string
	APIKey     string
	CORSOrigin string
	Env        string
	AssetDir   string
}

// Load reads settings from the environment, falling back to development
// defaults. godotenv.Load in main makes a local .env visible here.
func Load() Config {
	return Config{
		DBPath:     getEnv("DB_PATH", "moltpress.sqlite"),
		Port:       getEnv("PORT", "3000"),
		APIKey:     os.Getenv("API_KEY"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		Env:        getEnv("APP_ENV", "development"),
		AssetDir:   getEnv("ASSET_DIR", "public/images"),
	}
}

// Production reports whether seeding should be skipped.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
