package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EngineSearch    = "search"
	EngineAssistant = "assistant"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Chat    ChatConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	GoogleSearch      string
	GoogleCX          string
	OpenAI            string
	OpenAIAssistantID string
}

type ChatConfig struct {
	Engine          string // "search" or "assistant"
	RunPollInterval time.Duration
	RunTimeout      time.Duration
}

type SessionConfig struct {
	Store         string // "memory" or "redis"
	RedisURL      string
	MaxAge        time.Duration
	SweepInterval time.Duration
	AllowImplicit bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3011"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://handy-man.com.pl,https://handy-man.com.pl"),
		},
		Keys: APIKeys{
			GoogleSearch:      getEnv("GOOGLE_API_KEY", ""),
			GoogleCX:          getEnv("GOOGLE_CX", ""),
			OpenAI:            getEnv("OPENAI_API_KEY", ""),
			OpenAIAssistantID: getEnv("OPENAI_ASSISTANT_ID", ""),
		},
		Chat: ChatConfig{
			Engine:          getEnv("CHAT_ENGINE", EngineSearch),
			RunPollInterval: getEnvAsDuration("RUN_POLL_INTERVAL", 1*time.Second),
			RunTimeout:      getEnvAsDuration("RUN_TIMEOUT", 120*time.Second),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", StoreMemory),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			MaxAge:        getEnvAsDuration("SESSION_MAX_AGE", 24*time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 1*time.Hour),
			AllowImplicit: getEnvAsBool("ALLOW_IMPLICIT_SESSION", false),
		},
	}
}

// Validate fails fast at startup so missing credentials never surface as
// per-request errors.
func (c *Config) Validate() error {
	if c.Keys.GoogleSearch == "" || c.Keys.GoogleCX == "" {
		return fmt.Errorf("GOOGLE_API_KEY and GOOGLE_CX are required")
	}

	switch c.Chat.Engine {
	case EngineSearch:
	case EngineAssistant:
		if c.Keys.OpenAI == "" || c.Keys.OpenAIAssistantID == "" {
			return fmt.Errorf("OPENAI_API_KEY and OPENAI_ASSISTANT_ID are required when CHAT_ENGINE=assistant")
		}
	default:
		return fmt.Errorf("unknown CHAT_ENGINE %q (expected %q or %q)", c.Chat.Engine, EngineSearch, EngineAssistant)
	}

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (expected %q or %q)", c.Session.Store, StoreMemory, StoreRedis)
	}

	if c.Chat.RunPollInterval <= 0 || c.Chat.RunTimeout <= 0 {
		return fmt.Errorf("RUN_POLL_INTERVAL and RUN_TIMEOUT must be positive")
	}
	if c.Session.MaxAge <= 0 || c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE and SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
