package config

import (
	"os"
	"strconv"
)

type Config struct {
	Host         string
	Port         string
	AllowOrigins string
	SecretKey    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	OpenAIKey      string
	OpenAIBaseURL  string
	OpenAILlmModel string
	LlmMaxTokens   int
	ReqTimeoutSec  int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Host:         getenv("HOST", "0.0.0.0"),
		Port:         getenv("PORT", "8080"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),
		SecretKey:    getenv("SECRET_KEY", "dev-secret-change-me"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "budget_buddy"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		OpenAIKey:      getenv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAILlmModel: getenv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
		LlmMaxTokens:   atoi("LLM_MAX_TOKENS", 512),
		ReqTimeoutSec:  atoi("REQUEST_TIMEOUT_SECONDS", 30),
	}
}
