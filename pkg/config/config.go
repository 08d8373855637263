package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	// Media storage gateway
	StorageDriver      string
	StoragePublicKey   string
	StoragePrivateKey  string
	StorageURLEndpoint string
	StorageEndpoint    string
	StorageRegion      string
	StorageBucket      string
	StorageUseSSL      bool
	StorageFolder      string

	// Upload staging
	UploadTempDir string
	UploadTags    []string

	// Redis
	RedisEnabled       bool
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	RateLimitPerMinute int

	// RabbitMQ
	RabbitMQEnabled  bool
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	LogLevel string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8000"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "mediafeed"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", "s3")),
		StoragePublicKey:   getEnv("STORAGE_PUBLIC_KEY", ""),
		StoragePrivateKey:  getEnv("STORAGE_PRIVATE_KEY", ""),
		StorageURLEndpoint: getEnv("STORAGE_URL_ENDPOINT", ""),
		StorageEndpoint:    getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:      getEnv("STORAGE_REGION", "us-east-1"),
		StorageBucket:      getEnv("STORAGE_BUCKET", "media-feed"),
		StorageUseSSL:      getEnvBool("STORAGE_USE_SSL", false),
		StorageFolder:      getEnv("STORAGE_FOLDER", "posts"),

		UploadTempDir: getEnv("UPLOAD_TEMP_DIR", ""),
		UploadTags:    splitList(getEnv("UPLOAD_TAGS", "backend-upload")),

		RedisEnabled:       getEnvBool("REDIS_ENABLED", false),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),

		RabbitMQEnabled:  getEnvBool("RABBITMQ_ENABLED", false),
		RabbitMQHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
