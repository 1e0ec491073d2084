package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	TokenTTLMinutes int
	GinMode         string
	ListenAddr      string
}

func Load() *Config {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "planner"),
		DBPassword:      getEnv("DB_PASSWORD", "plannerpassword"),
		DBName:          getEnv("DB_NAME", "student_council_planner"),
		JWTSecret:       getEnv("JWT_SECRET", "default-secret-key-change-me-0123456789"),
		JWTIssuer:       getEnv("JWT_ISSUER", "student-council-planner"),
		JWTAudience:     getEnv("JWT_AUDIENCE", "student-council-planner-clients"),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 720),
		GinMode:         getEnv("GIN_MODE", "debug"),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
