package bootstrap

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"handyman-chat-be/internal/config"
	"handyman-chat-be/internal/controller"
	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/internal/repository/contract"
	"handyman-chat-be/internal/repository/memory"
	"handyman-chat-be/internal/repository/redisstore"
	"handyman-chat-be/internal/service"
	"handyman-chat-be/pkg/assistant/openai"
	"handyman-chat-be/pkg/chatbot"
	"handyman-chat-be/pkg/search"
)

type Container struct {
	ChatController controller.IChatController
	Logger         logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Session Store
	var sessionRepo contract.ISessionRepository
	if cfg.Session.Store == config.StoreRedis {
		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] Failed to parse Redis URL: %v", err)
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Session.MaxAge)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.MaxAge, cfg.Session.SweepInterval)
		log.Printf("[INFO] Using Session Store: MEMORY (max age %s, sweep %s)", cfg.Session.MaxAge, cfg.Session.SweepInterval)
	}

	// 3. Search Provider
	searchProvider := search.NewGoogleProvider(cfg.Keys.GoogleSearch, cfg.Keys.GoogleCX, sysLogger)

	// 4. Conversation Engine based on Config
	var engine chatbot.Engine
	if cfg.Chat.Engine == config.EngineAssistant {
		assistantClient := openai.NewAssistantClient(cfg.Keys.OpenAI, cfg.Keys.OpenAIAssistantID)
		engine = chatbot.NewAssistantEngine(
			assistantClient,
			searchProvider,
			sysLogger,
			cfg.Chat.RunPollInterval,
			cfg.Chat.RunTimeout,
		)
		log.Printf("[INFO] Using Chat Engine: ASSISTANT (poll %s, timeout %s)", cfg.Chat.RunPollInterval, cfg.Chat.RunTimeout)
	} else {
		engine = chatbot.NewSearchEngine(searchProvider, sysLogger)
		log.Printf("[INFO] Using Chat Engine: SEARCH")
	}

	// 5. Services & Controllers
	chatService := service.NewChatService(sessionRepo, engine, sysLogger, cfg.Session.AllowImplicit)

	return &Container{
		ChatController: controller.NewChatController(chatService),
		Logger:         sysLogger,
	}
}
