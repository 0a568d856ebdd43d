package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"plugshop/internal/db"
	"plugshop/internal/domain/storage"
	"plugshop/internal/kv"
)

func main() {
	var (
		file  = flag.String("file", "", "YAML fixture to load (defaults to the built-in demo shop)")
		reset = flag.Bool("reset", false, "delete catalogue, promos, content and settings before seeding")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	logger := zl.Sugar()
	defer logger.Sync()

	data := defaultFixture
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			logger.Fatalw("read fixture", "file", *file, "error", err)
		}
	}
	f, err := parseFixture(data)
	if err != nil {
		logger.Fatal(err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	client, err := db.New(redisURL, 4, "")
	if err != nil {
		logger.Fatalw("connect redis", "error", err)
	}
	defer client.Close()

	store := storage.NewContainer(kv.NewRedis(client))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *reset {
		n, err := store.Purge(ctx, purgePrefixes...)
		if err != nil {
			logger.Fatalw("reset failed", "error", err)
		}
		logger.Infow("store reset", "deleted", n)
	}

	if _, err := apply(ctx, store, f, logger); err != nil {
		logger.Fatalw("seed failed", "error", err)
	}
	logger.Info("seed applied")
}
