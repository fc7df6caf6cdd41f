package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/redis/go-redis/v9"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/config"
	"webpos/pos-service/internal/app/pos/handler"
	"webpos/pos-service/internal/app/pos/infrastructure"
	"webpos/pos-service/internal/app/pos/infrastructure/messaging"
	"webpos/pos-service/internal/app/pos/repository"
	"webpos/pos-service/internal/app/pos/service"
	"webpos/pos-service/internal/app/pos/util"
)

const serviceName = "pos-service"

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
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate database schema")
		}
		logger.Info().Msg("Database schema is up to date")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sqlDB, err := db.DB(); err == nil {
		go reportDBStats(ctx, sqlDB)
	}

	var (
		redisClient *redis.Client
		cache       = repository.NewNopCache()
	)
	if cfg.Redis.Enabled() {
		redisClient, err = repository.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Address()).Msg("Redis unavailable, lookup cache disabled")
		} else {
			defer redisClient.Close()
			cache = repository.NewRedisLookupCache(redisClient, cfg.Redis.TTL)
			logger.Info().Str("addr", cfg.Redis.Address()).Dur("ttl", cfg.Redis.TTL).Msg("Connected to Redis")
		}
	}

	var publisher infrastructure.MessagePublisher = messaging.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	} else {
		logger.Info().Msg("No Kafka brokers configured, events are not published")
	}
	defer publisher.Close()

	tx := repository.NewTransactor(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	printerRepo := repository.NewPrinterRepository(db)
	taxRepo := repository.NewTaxRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	saleService := service.NewSaleService(tx, productRepo, taxRepo, discountRepo, saleRepo, publisher)
	backupService := service.NewBackupService(tx, snapshotRepo, cache, publisher)
	catalogService := service.NewCatalogService(tx, categoryRepo, productRepo, saleRepo, cache)
	staffService := service.NewStaffService(staffRepo, credentialRepo, jwtManager)
	pricingService := service.NewPricingService(taxRepo, discountRepo, cache)
	printerService := service.NewPrinterService(printerRepo)
	reportService := service.NewReportService(reportRepo)

	rateLimit, err := handler.NewRateLimiter(cfg.RateLimit.Rate, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure rate limiter")
	}

	router := handler.SetupRoutes(handler.Handlers{
		Sales:    handler.NewSaleHandler(saleService),
		Backups:  handler.NewBackupHandler(backupService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Staff:    handler.NewStaffHandler(staffService),
		Settings: handler.NewSettingsHandler(pricingService, printerService),
		Reports:  handler.NewReportHandler(reportService),
	}, handler.NewAuthMiddleware(jwtManager), handler.RouterOptions{
		AllowOrigins: cfg.CORS.AllowOrigins,
		RateLimit:    rateLimit,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting POS Service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down POS Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("POS Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func reportDBStats(ctx context.Context, db *sql.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := db.Stats()
			metrics.DbConnectionsOpen.WithLabelValues(serviceName, "in_use").Set(float64(stats.InUse))
			metrics.DbConnectionsOpen.WithLabelValues(serviceName, "idle").Set(float64(stats.Idle))
		}
	}
}
