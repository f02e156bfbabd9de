package config

import "os"

type Config struct {
	Port            string
	Env             string
	Storage         string
	PostgresConnStr string
	JWTSecret       string
	MediaDir        string
	LogLevel        string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		Storage:         getEnv("STORAGE", "postgres"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		MediaDir:        getEnv("MEDIA_DIR", "./media"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
