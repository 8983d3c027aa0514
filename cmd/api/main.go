package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pymerp/gastro-catalog/config"
	"github.com/pymerp/gastro-catalog/internal/auth"
	"github.com/pymerp/gastro-catalog/internal/cache"
	"github.com/pymerp/gastro-catalog/internal/middleware"
	modifierhandler "github.com/pymerp/gastro-catalog/internal/modifier/handler"
	modifierrepo "github.com/pymerp/gastro-catalog/internal/modifier/repository"
	modifierusecase "github.com/pymerp/gastro-catalog/internal/modifier/usecase"
	producthandler "github.com/pymerp/gastro-catalog/internal/product/handler"
	productrepo "github.com/pymerp/gastro-catalog/internal/product/repository"
	productusecase "github.com/pymerp/gastro-catalog/internal/product/usecase"
	publicationhandler "github.com/pymerp/gastro-catalog/internal/publication/handler"
	publicationrepo "github.com/pymerp/gastro-catalog/internal/publication/repository"
	publicationusecase "github.com/pymerp/gastro-catalog/internal/publication/usecase"
	"github.com/pymerp/gastro-catalog/internal/search"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment")
	}
	cfg := config.LoadEnv()

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := connectPostgres(cfg.Postgres)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, lookup cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		logger.Warn("elasticsearch unavailable, falling back to DB search", zap.Error(err))
		esClient = nil
	}

	productRepo := productrepo.NewPGRepository(db)
	modifierRepo := modifierrepo.NewPGRepository(db)
	publicationRepo := publicationrepo.NewPGRepository(db)

	productUC := productusecase.NewProductUseCase(productRepo, logger)
	modifierUC := modifierusecase.NewModifierUseCase(modifierRepo, productRepo, redisClient, esClient, logger)
	publicationUC := publicationusecase.NewPublicationUseCase(publicationRepo, productRepo, logger)

	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/gastro")
	api.Use(auth.RequireCompany())
	producthandler.NewProductHandler(productUC, modifierUC, logger).RegisterRoutes(api)
	modifierhandler.NewModifierHandler(modifierUC, logger).RegisterRoutes(api)
	publicationhandler.NewPublicationHandler(publicationUC, logger).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func newLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = cfg.Encoding
	zapCfg.DisableCaller = cfg.DisableCaller
	zapCfg.DisableStacktrace = cfg.DisableStacktrace
	if cfg.Encoding == "console" {
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zapCfg.Build()
}

func connectPostgres(cfg config.PostgresConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	return db, nil
}
