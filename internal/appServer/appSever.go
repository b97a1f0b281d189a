package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventpass/eventpass/config"
	repository "github.com/eventpass/eventpass/internal/database/postgres"
	cache "github.com/eventpass/eventpass/internal/database/redis"
	"github.com/eventpass/eventpass/internal/service"
	"github.com/eventpass/eventpass/internal/transport"
	"github.com/eventpass/eventpass/internal/worker"

	"github.com/eventpass/eventpass/pkg/auth"
	"github.com/eventpass/eventpass/pkg/postgres"
	"github.com/eventpass/eventpass/pkg/redis"
	"github.com/eventpass/eventpass/pkg/storage"
	"github.com/eventpass/eventpass/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)

	// Initialize event catalog cache
	var eventCache service.EventCatalogCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		eventCache = cache.NewEventCache(redisClient, cfg.App.CacheTTL)
		logrus.Info("Event catalog cache initialized")
	} else {
		logrus.Warn("Redis disabled, event catalog served from database only")
	}

	// Initialize QR artifact store
	artifacts := storage.NewFileStorage(cfg.App.QRStorageDir)

	// Initialize Telegram notifier
	notifier := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Enabled)
	if notifier.Enabled() {
		logrus.Info("Telegram check-in notifications enabled")
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, tokens)
	eventService := service.NewEventService(eventRepo, eventCache)
	registrationService := service.NewRegistrationService(regRepo, eventRepo, userRepo, artifacts)
	attendanceService := service.NewAttendanceService(regRepo, notifier)
	reportService := service.NewReportService(regRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bootstrap admin account
	if err := userService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logrus.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Initialize artifact sweeper
	sweeper := worker.NewArtifactSweeper(regRepo, artifacts, cfg.Worker.SweepInterval)
	go sweeper.Start(ctx)
	logrus.Info("Artifact sweeper started")

	// Initialize handlers
	authHandler := transport.NewAuthHandler(userService)
	eventHandler := transport.NewEventHandler(eventService)
	registrationHandler := transport.NewRegistrationHandler(registrationService)
	attendanceHandler := transport.NewAttendanceHandler(attendanceService)
	reportHandler := transport.NewReportHandler(reportService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		router := transport.InitRoutes(tokens, authHandler, eventHandler, registrationHandler, attendanceHandler, reportHandler)
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
