package platform

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-level configuration. Everything comes from the
// environment; there is no config file and nothing is persisted.
type Config struct {
	Port             string
	OpenAIKey        string
	ImageConcurrency int
	SessionTTL       time.Duration
	PromptEnrichment bool
}

// LoadConfig reads the environment, with a .env file honored when present.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ImageConcurrency: getEnvInt("IMAGE_CONCURRENCY", 4),
		SessionTTL:       getEnvDuration("SESSION_TTL", 2*time.Hour),
		PromptEnrichment: getEnvBool("PROMPT_ENRICHMENT", false),
	}

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, generation requests will fail")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}
