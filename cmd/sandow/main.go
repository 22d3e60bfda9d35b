package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ayusman/sandow/internal/catalog"
	"github.com/ayusman/sandow/internal/coach"
	"github.com/ayusman/sandow/internal/compare"
	"github.com/ayusman/sandow/internal/logging"
	"github.com/ayusman/sandow/internal/server"
)

func main() {
	fmt.Println("Sandow - Pose Scoring and Comparison")

	// Load .env when present; real environment variables win
	_ = godotenv.Load()

	logger, err := logging.NewLogger(os.Getenv("SANDOW_DEBUG") == "true")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Initialize the reference catalog store
	dbPath := os.Getenv("SANDOW_DB")
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logger.Fatal("failed to get home directory", zap.Error(err))
		}

		dbDir := filepath.Join(homeDir, ".sandow")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Fatal("failed to create data directory", zap.Error(err))
		}
		dbPath = filepath.Join(dbDir, "sandow.db")
	}

	st, err := catalog.New(dbPath)
	if err != nil {
		logger.Fatal("failed to initialize catalog store", zap.Error(err))
	}
	defer st.Close()
	logger.Info("catalog store ready", zap.String("path", dbPath))

	// Wire the comparison coach, with Redis caching when configured
	opts := []coach.Option{coach.WithLogger(logger)}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := initRedis(addr, logger)
		opts = append(opts, coach.WithCache(coach.NewRedisCache(client)))
	}

	c := coach.New(st.References(), compare.New(compare.Config{}), opts...)

	srv := server.New(server.Config{
		Store:  st,
		Coach:  c,
		Logger: logger,
	})

	addr := getEnv("SANDOW_ADDR", ":8080")
	if err := srv.ListenAndServe(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func initRedis(addr string, logger *zap.Logger) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		wrapped := logging.NewOperationError("redis.ping", "", err)
		logger.Fatal("redis connection failed", zap.String("addr", addr), zap.Error(wrapped))
	}
	logger.Info("comparison cache ready", zap.String("addr", addr))
	return client
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
