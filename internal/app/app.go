package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	postHTTP "media-feed/internal/controller/http"
	"media-feed/internal/repo/persistent"
	"media-feed/internal/usecase"
	"media-feed/pkg/config"
	"media-feed/pkg/logger"
	"media-feed/pkg/middleware"
	"media-feed/pkg/queue"
	"media-feed/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "media-feed/docs" // Swagger docs
)

// Deps are the process-lifetime clients the service is built from.
// RedisClient and QueueClient are optional.
type Deps struct {
	DB          *gorm.DB
	Gateway     storage.Gateway
	RedisClient *redis.Client
	QueueClient *queue.Client
}

// NewRouter wires repositories, use cases and handlers into a gin engine.
func NewRouter(cfg *config.Config, log *logger.Logger, deps Deps) *gin.Engine {
	// Initialize repositories
	postRepo := persistent.NewPostRepository(deps.DB)

	// A nil *queue.Client must not become a non-nil interface value
	var publisher usecase.EventPublisher
	if deps.QueueClient != nil {
		publisher = deps.QueueClient
	}

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, deps.Gateway, publisher, usecase.Options{
		StagingDir: cfg.UploadTempDir,
		UploadTags: cfg.UploadTags,
	}, log.With("posts"))

	// Initialize HTTP handlers
	postHandler := postHTTP.NewPostHandler(postUseCase, log.With("http"))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log.With("access")))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	if deps.RedisClient != nil {
		api.Use(middleware.RateLimitMiddleware(deps.RedisClient, cfg.RateLimitPerMinute, time.Minute))
	}

	{
		api.POST("/upload", postHandler.UploadPost)
		api.GET("/feed", postHandler.GetFeed)
		api.DELETE("/posts/:post_id", postHandler.DeletePost)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, deps Deps) {
	r := NewRouter(cfg, log, deps)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Media feed service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down media feed service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain requests before closing clients
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Close database connection
	sqlDB, err := deps.DB.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if deps.RedisClient != nil {
		if err := deps.RedisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if deps.QueueClient != nil {
		if err := deps.QueueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	log.Info("Media feed service exited")
}
