package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/komolbek/raadarenda-sub001/internal/api/http"
	"github.com/komolbek/raadarenda-sub001/internal/config"
	"github.com/komolbek/raadarenda-sub001/internal/jobs"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/notify"
	"github.com/komolbek/raadarenda-sub001/internal/ratelimit"
	"github.com/komolbek/raadarenda-sub001/internal/repository/postgres"
	"github.com/komolbek/raadarenda-sub001/internal/scheduler"
	"github.com/komolbek/raadarenda-sub001/internal/security"
	"github.com/komolbek/raadarenda-sub001/internal/service"
	"github.com/komolbek/raadarenda-sub001/internal/sms"
	"github.com/komolbek/raadarenda-sub001/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting raadarenda backend...", "log_level", cfg.Log.Level, "environment", cfg.Server.Environment)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// SMS provider.
	var sender sms.Sender
	switch cfg.SMS.Provider {
	case "eskiz":
		sender = sms.NewEskizSender(cfg.SMS.EskizURL, cfg.SMS.EskizEmail, cfg.SMS.EskizSecret, cfg.SMS.EskizFrom)
		logger.Info("Using eskiz SMS provider")
	default:
		sender = sms.NewLogSender()
		logger.Info("Using log SMS provider, codes are written to the log")
	}

	// OTP send throttling, backed by Redis when configured.
	limiter := ratelimit.NewNopLimiter()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Failed to ping redis, OTP throttling disabled", "error", err)
		} else {
			window := time.Duration(cfg.Auth.SendThrottleSecs) * time.Second
			limiter = ratelimit.NewRedisLimiter(rdb, "otp:send", window)
			logger.Info("Redis OTP throttling enabled", "window", window)
		}
	}

	// Image storage backend.
	backend, err := storage.NewBackend(&cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err)
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}

	notifier := notify.NewEmailNotifier(cfg.Email.SendgridKey, cfg.Email.From, cfg.Email.OrderAlert)
	tokenManager := security.NewAdminTokenManager(cfg.Admin.SessionSecret)

	gateway, err := service.NewPaymentGateway(&cfg.Payment, store.CardRepository)
	if err != nil {
		logger.Error("Failed to initialize payment gateway", "error", err)
		log.Fatalf("Failed to initialize payment gateway: %v", err)
	}

	authSvc := service.NewAuthService(
		store.UserRepository,
		store.OTPRepository,
		store.SessionRepository,
		sender,
		limiter,
		tokenManager,
		cfg,
	)
	catalogSvc := service.NewCatalogService(
		store.CategoryRepository,
		store.ProductRepository,
		store.OrderRepository,
		store.SettingRepository,
	)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.ProductRepository,
		store.AddressRepository,
		store.UserRepository,
		store.SettingRepository,
		gateway,
		notifier,
	)
	userSvc := service.NewUserService(
		store.UserRepository,
		store.AddressRepository,
		store.CardRepository,
		store.FavoriteRepository,
	)
	adminSvc := service.NewAdminService(
		store.OrderRepository,
		store.ProductRepository,
		store.CategoryRepository,
		store.UserRepository,
		store.SettingRepository,
	)
	uploadSvc := service.NewUploadService(backend, cfg.Storage.JPEGQuality, cfg.Storage.MaxFileSizeMB)

	// Maintenance jobs.
	jobRunner := jobs.NewJobRunner(store.OTPRepository, store.SessionRepository, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	uploadDir := ""
	if backend.Name() == "local" {
		uploadDir = cfg.Storage.UploadDir
	}
	router := httpapi.NewRouter(httpapi.RouterConfig{
		AuthSvc:       authSvc,
		CatalogSvc:    catalogSvc,
		OrderSvc:      orderSvc,
		UserSvc:       userSvc,
		AdminSvc:      adminSvc,
		UploadSvc:     uploadSvc,
		UploadDir:     uploadDir,
		SecureCookies: cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
