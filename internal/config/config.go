package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string

	// LLM Configuration
	GeminiAPIKey string
	GeminiModel  string // "gemini-1.5-pro-latest", "gemini-2.5-pro"
	OpenAIAPIKey string
	OpenAIModel  string // "gpt-4o", "gpt-4o-mini"

	// External services
	SerpAPIKey   string
	DiscoveryURL string

	// Auth (RS256 public key in PEM form; tokens are issued by the auth service)
	JWTPublicKey string
	CookieName   string

	// Ranking pipeline tuning
	RankingBatchSize     int
	RankingMaxRetries    int
	RankingRetryDelay    time.Duration
	RankingBatchCooldown time.Duration

	// Logging
	JSONLogs bool
	Debug    bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-1.5-pro-latest"
	}

	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-4o"
	}

	cookieName := os.Getenv("COOKIE_NAME")
	if cookieName == "" {
		cookieName = "access_token"
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  geminiModel,
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  openAIModel,

		SerpAPIKey:   os.Getenv("SERPAPI_KEY"),
		DiscoveryURL: os.Getenv("DISCOVERY_URL"),

		JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		CookieName:   cookieName,

		RankingBatchSize:     envInt("RANKING_BATCH_SIZE", 3),
		RankingMaxRetries:    envInt("RANKING_MAX_RETRIES", 3),
		RankingRetryDelay:    envDuration("RANKING_RETRY_DELAY", 5*time.Second),
		RankingBatchCooldown: envDuration("RANKING_BATCH_COOLDOWN", 5*time.Second),

		JSONLogs: os.Getenv("JSON_LOGS") == "true",
		Debug:    os.Getenv("DEBUG") == "true",
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("Warning: invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}
