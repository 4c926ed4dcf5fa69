package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tokotrack/catalog-service/config"
	"github.com/tokotrack/catalog-service/internal/auth"
	"github.com/tokotrack/catalog-service/pkg/broker"
	"github.com/tokotrack/catalog-service/pkg/cache"
	"github.com/tokotrack/catalog-service/pkg/database/postgres"
	"github.com/tokotrack/catalog-service/pkg/i18n"
	"github.com/tokotrack/catalog-service/pkg/logger"
	"github.com/tokotrack/catalog-service/pkg/search"

	bomH "github.com/tokotrack/catalog-service/internal/bom/handler"
	bomRepoPkg "github.com/tokotrack/catalog-service/internal/bom/repository"
	bomUCPkg "github.com/tokotrack/catalog-service/internal/bom/usecase"

	catH "github.com/tokotrack/catalog-service/internal/category/handler"
	catRepoPkg "github.com/tokotrack/catalog-service/internal/category/repository"
	catUCPkg "github.com/tokotrack/catalog-service/internal/category/usecase"

	matH "github.com/tokotrack/catalog-service/internal/material/handler"
	matListenerPkg "github.com/tokotrack/catalog-service/internal/material/listener"
	matRepoPkg "github.com/tokotrack/catalog-service/internal/material/repository"
	matUCPkg "github.com/tokotrack/catalog-service/internal/material/usecase"

	prodH "github.com/tokotrack/catalog-service/internal/product/handler"
	prodRepoPkg "github.com/tokotrack/catalog-service/internal/product/repository"
	prodUCPkg "github.com/tokotrack/catalog-service/internal/product/usecase"

	varH "github.com/tokotrack/catalog-service/internal/variation/handler"
	varRepoPkg "github.com/tokotrack/catalog-service/internal/variation/repository"
	varUCPkg "github.com/tokotrack/catalog-service/internal/variation/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n
	i18n.Init()
	if err := i18n.Load("i18n/locales/active.en.json"); err != nil {
		log.Printf("Failed to load en locales: %v", err)
	}
	if err := i18n.Load("i18n/locales/active.id.json"); err != nil {
		log.Printf("Failed to load id locales: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	varRepo := varRepoPkg.NewPGRepository(db)
	bomRepo := bomRepoPkg.NewPGRepository(db)
	matRepo := matRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	varUC := varUCPkg.NewVariationUseCase(varRepo, prodRepo, appLogger)
	bomUC := bomUCPkg.NewBOMUseCase(bomRepo, prodRepo, varRepo, matRepo, appLogger)
	matUC := matUCPkg.NewMaterialUseCase(matRepo, bomRepo, varRepo, redisClient, appLogger)

	// 6.5 Initialize Listeners
	orderListener := matListenerPkg.NewOrderListener(kafkaConsumer, matUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orderListener.Start(ctx)

	// 7. Initialize Handlers
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	varHandler := varH.NewVariationHandler(varUC, appLogger)
	bomHandler := bomH.NewBOMHandler(bomUC, appLogger)
	matHandler := matH.NewMaterialHandler(matUC, appLogger)

	// 8. Start HTTP Server
	app := fiber.New(fiber.Config{
		AppName:      "tokotrack-catalog-service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(auth.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")
	catHandler.RegisterRoutes(api)
	prodHandler.RegisterRoutes(api)
	varHandler.RegisterRoutes(api)
	bomHandler.RegisterRoutes(api)
	matHandler.RegisterRoutes(api)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := app.Listen(port); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
