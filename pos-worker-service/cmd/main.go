package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"webpos/pkg/logger"
	"webpos/pos-worker-service/internal/app/pos-worker/config"
	"webpos/pos-worker-service/internal/app/pos-worker/handler"
	"webpos/pos-worker-service/internal/app/pos-worker/processor"
	"webpos/pos-worker-service/internal/app/pos-worker/repository"
	"webpos/pos-worker-service/internal/app/pos-worker/service"
)

const serviceName = "pos-worker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := connectMongoDB(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(disconnectCtx)
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")

	archiveRepo := repository.NewArchiveRepository(mongoClient.Database(cfg.Mongo.Database))
	statsRepo := repository.NewSalesStatsRepository(redisClient, cfg.Redis.StatsTTL)

	posClient := service.NewPOSAPIClient(cfg.POSService.URL, cfg.POSService.JWTSecret, cfg.POSService.Timeout)
	backupSvc := service.NewBackupArchiveService(posClient, archiveRepo, cfg.Cron.Retention)
	statsSvc := service.NewSalesStatsService(statsRepo)

	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		statsSvc,
	)
	kafkaConsumer.Start(ctx)
	defer kafkaConsumer.Stop()

	cronScheduler := processor.NewCronScheduler(backupSvc)
	if err := cronScheduler.Start(ctx, cfg.Cron.Backup, cfg.Cron.RunOnStart); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Cron.Backup).Msg("Failed to start cron scheduler")
	}
	defer cronScheduler.Stop()

	mux := http.NewServeMux()
	handler.NewHealthCheckHandler(map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		"redis":   func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}).RegisterRoutes(mux)
	handler.NewWorkerHandler(statsSvc, backupSvc).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Str("backup_schedule", cfg.Cron.Backup).
		Int("retention", cfg.Cron.Retention).
		Msg("POS worker is running")

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Worker stopped with error")
	}
	logger.Info().Msg("POS worker stopped")
}

func connectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	var lastErr error
	for i := 0; i < 10; i++ {
		client, err := mongo.Connect(ctx, clientOpts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				return client, nil
			}
			client.Disconnect(context.Background())
		}

		lastErr = err
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to MongoDB")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", lastErr)
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	var err error
	for i := 0; i < 10; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to Redis")
		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts: %w", err)
}
