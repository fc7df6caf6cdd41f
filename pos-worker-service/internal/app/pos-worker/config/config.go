package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the worker settings: where to archive backups, where to keep
// daily sales stats and how to reach the POS API.
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Mongo      MongoConfig
	Kafka      KafkaConfig
	Cron       CronConfig
	POSService POSServiceConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	StatsTTL time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

type CronConfig struct {
	Backup     string // six fields, seconds first
	Retention  int    // archives kept after pruning
	RunOnStart bool
}

type POSServiceConfig struct {
	URL       string
	JWTSecret string
	Timeout   time.Duration
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 1),
			StatsTTL: getEnvDuration("STATS_TTL", 90*24*time.Hour),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "pos_backups"),
		},
		Kafka: KafkaConfig{
			Brokers:  getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:    getEnv("KAFKA_TOPIC", "pos_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "pos-worker"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		Cron: CronConfig{
			Backup:     getEnv("BACKUP_CRON", "0 0 2 * * *"),
			Retention:  getEnvInt("BACKUP_RETENTION", 14),
			RunOnStart: getEnvBool("BACKUP_ON_START", false),
		},
		POSService: POSServiceConfig{
			URL:       strings.TrimRight(getEnv("POS_SERVICE_URL", "http://localhost:2022"), "/"),
			JWTSecret: getEnv("JWT_SECRET", ""),
			Timeout:   getEnvDuration("POS_SERVICE_TIMEOUT", time.Minute),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}

	if cfg.POSService.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Cron.Retention < 1 {
		return nil, fmt.Errorf("BACKUP_RETENTION must be positive, got %d", cfg.Cron.Retention)
	}

	return cfg, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
