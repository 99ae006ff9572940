package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quiz-llm/internal/catalog"
	"quiz-llm/internal/config"
	apihttp "quiz-llm/internal/http"
	"quiz-llm/internal/llm"
	"quiz-llm/internal/service"
	"quiz-llm/internal/store"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Un cuestionario inválido es un defecto de programación: abortar acá,
	// no por request.
	if err := catalog.Validate(); err != nil {
		logger.Fatal("question catalog invalid", zap.Error(err))
	}

	sessionStore := store.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory sessions", zap.Error(err))
		} else {
			sessionStore = store.NewRedisSessionStore(redisClient)
		}
		cancel()
	}

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	analysisSvc := service.NewAnalysisService(llmClient, logger)
	sessionSvc := service.NewSessionService(
		sessionStore,
		analysisSvc,
		logger,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
	)
	quizHandler := apihttp.NewQuizHandler(logger, sessionSvc)
	router := apihttp.NewRouter(logger, quizHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
