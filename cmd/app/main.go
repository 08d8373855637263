package main

import (
	"context"
	"time"

	"media-feed/internal/app"
	"media-feed/pkg/cache"
	"media-feed/pkg/config"
	"media-feed/pkg/database"
	"media-feed/pkg/logger"
	"media-feed/pkg/minio"
	"media-feed/pkg/queue"
	"media-feed/pkg/s3"
	"media-feed/pkg/storage"
)

// @title           Media Feed API
// @version         1.0
// @description     Upload media with a caption, read the feed, delete posts

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	if cfg.DBAutoMigrate {
		if err := database.Migrate(cfg, "up"); err != nil {
			log.Error("Failed to run migrations: %v", err)
			panic(err)
		}
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	gateway, err := newGateway(cfg, log)
	if err != nil {
		log.Error("Failed to create %s storage client: %v", cfg.StorageDriver, err)
		panic(err)
	}

	deps := app.Deps{DB: db, Gateway: gateway}

	if cfg.RedisEnabled {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("Failed to connect to redis: %v", err)
			panic(err)
		}
		deps.RedisClient = redisClient
	}

	if cfg.RabbitMQEnabled {
		queueClient, err := queue.NewRabbitMQClient(cfg, log.With("queue"))
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v", err)
			panic(err)
		}
		deps.QueueClient = queueClient
	}

	app.Run(cfg, log, deps)
}

func newGateway(cfg *config.Config, log *logger.Logger) (storage.Gateway, error) {
	if cfg.StorageDriver == "minio" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return minio.NewStorage(ctx, cfg, log.With("minio"))
	}
	return s3.NewClient(cfg)
}
