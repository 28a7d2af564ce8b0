package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wordarena/wordarena-go/internal/api"
	"github.com/wordarena/wordarena-go/internal/factory"
	"github.com/wordarena/wordarena-go/internal/services/dictionary"
	redisstorage "github.com/wordarena/wordarena-go/internal/storage/redis"
)

func main() {
	// Local development configuration, ignored when absent
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	answersPath := envOr("WORDARENA_ANSWERS", "data/answers.txt")
	answers, err := dictionary.ReadWordFile(answersPath)
	if err != nil {
		logger.Error("failed to load answer list",
			slog.String("path", answersPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Seed:        os.Getenv("WORDARENA_SEED"),
		Answers:     answers,
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.Seed == "" {
		logger.Warn("WORDARENA_SEED not set, word assignment uses an empty seed")
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the accepted-guess dictionary, preferring the stored copy
	dictPath := envOr("WORDARENA_DICTIONARY", "data/words.txt")
	if err := app.DictionaryService.LoadFromStorage(context.Background()); err != nil {
		if err := app.DictionaryService.LoadFromFile(context.Background(), dictPath); err != nil {
			logger.Warn("could not load dictionary",
				slog.String("path", dictPath),
				slog.String("error", err.Error()),
			)
		}
	}
	logger.Info("dictionary ready",
		slog.Int("words", app.DictionaryService.WordCount()),
		slog.Int("answers", len(answers)),
	)

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		GameController:  app.GameController,
		ArenaController: app.ArenaController,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = p
		}
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
