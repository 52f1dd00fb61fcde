package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/mockmentor-backend/internal/db"
	"github.com/yungbote/mockmentor-backend/internal/handlers"
	"github.com/yungbote/mockmentor-backend/internal/middleware"
	"github.com/yungbote/mockmentor-backend/internal/observability"
	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/platform/openai"
	"github.com/yungbote/mockmentor-backend/internal/prompts"
	"github.com/yungbote/mockmentor-backend/internal/server"
	"github.com/yungbote/mockmentor-backend/internal/services"
	"github.com/yungbote/mockmentor-backend/internal/store"
	"github.com/yungbote/mockmentor-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "mockmentor-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	// Prompt catalogue
	catalogue, err := prompts.Load()
	if err != nil {
		log.Error("Could not load prompt catalogue", "error", err)
		os.Exit(1)
	}

	// Session store
	log.Info("Setting up session store from main...")
	sessionStore, err := buildStore(log)
	if err != nil {
		log.Error("Could not init session store", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services from main...")
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	generatorService := services.NewGeneratorService(log, openaiClient, catalogue)
	responderService := services.NewResponderService(log, openaiClient)
	interviewService := services.NewInterviewService(log, sessionStore, generatorService, responderService, catalogue)

	// Handlers
	log.Info("Setting up handlers from main...")
	interviewHandler := handlers.NewInterviewHandler(log, interviewService)

	// Middleware
	requestLogMiddleware := middleware.NewRequestLogMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		InterviewHandler:     interviewHandler,
		RequestLogMiddleware: requestLogMiddleware,
		AllowOrigins:         splitOrigins(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)),
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}

// buildStore selects the session store backend from STORE_BACKEND:
// file (default), sqlite, postgres, or redis.
func buildStore(log *logger.Logger) (store.Store, error) {
	backend := strings.ToLower(utils.GetEnv("STORE_BACKEND", "file", log))
	switch backend {
	case "file":
		return store.NewFileStore(utils.GetEnv("RECORDS_DIR", "records", log), log)
	case "sqlite":
		sqliteService, err := db.NewSQLiteService(log)
		if err != nil {
			return nil, err
		}
		if err := sqliteService.AutoMigrateAll(); err != nil {
			return nil, err
		}
		return store.NewGormStore(sqliteService.DB(), log), nil
	case "postgres":
		postgresService, err := db.NewPostgresService(log)
		if err != nil {
			return nil, err
		}
		if err := postgresService.AutoMigrateAll(); err != nil {
			return nil, err
		}
		return store.NewGormStore(postgresService.DB(), log), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     utils.GetEnv("REDIS_ADDR", "localhost:6379", log),
			Password: utils.GetEnv("REDIS_PASSWORD", "", log),
			DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return store.NewRedisStore(rdb, log), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
