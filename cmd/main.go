// @title CricInnings League API
// @version 1.0
// @description Cricket league administration: leagues, teams, squads and generated fixtures.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/config"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/db"
	_ "github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/docs"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/handlers"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/middleware"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	api "github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/routes"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
	"github.com/go-chi/chi/v5"
)

const blacklistPruneInterval = 10 * time.Minute

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Cloudflare R2 необязателен: без него загрузка файлов отвечает 503
	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(appCtx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		logger.Warn("Cloudflare R2 is not configured, file uploads are disabled")
	}

	// WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(appCtx)
	logger.Info("WebSocket Hub started")

	// Репозитории
	adminRepo := repositories.NewPostgresAdminRepository(dbConn)
	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)

	// Сервисы
	tokens := services.NewTokenManager(cfg.JWTSecretKey, cfg.JWTTTL)
	blacklist := services.NewTokenBlacklist()
	emailService := services.NewEmailService(cfg, logger)
	transactor := services.NewSQLTransactor(dbConn, logger)

	authService := services.NewAuthService(adminRepo, tokens, blacklist, emailService, logger)
	leagueService := services.NewLeagueService(transactor, leagueRepo, teamRepo, matchRepo, uploader, wsHub, logger)
	teamService := services.NewTeamService(teamRepo, leagueRepo, uploader, logger)
	matchService := services.NewMatchService(matchRepo, leagueRepo, wsHub, logger)
	uploadService := services.NewUploadService(uploader, logger)
	logger.Info("services initialized")

	// Периодически чистим отозванные токены с истекшим сроком
	go func() {
		ticker := time.NewTicker(blacklistPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-appCtx.Done():
				return
			case <-ticker.C:
				if n := blacklist.Prune(); n > 0 {
					logger.Debug("pruned revoked tokens", slog.Int("count", n))
				}
			}
		}
	}()

	// HTTP
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		middleware.Authenticate(authService, logger),
		cfg.AllowedOrigins,
		handlers.NewAuthHandler(authService),
		handlers.NewLeagueHandler(leagueService, teamService, matchService),
		handlers.NewTeamHandler(teamService),
		handlers.NewMatchHandler(matchService),
		handlers.NewUploadHandler(uploadService),
		handlers.NewWebSocketHandler(wsHub, leagueService, cfg.AllowedOrigins, logger),
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stopApp()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		// закрываем WebSocket-клиентов до остановки HTTP-сервера
		stopApp()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
