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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	openai "github.com/sashabaranov/go-openai"

	"github.com/imartinez/fronton-league/config"
	"github.com/imartinez/fronton-league/db"
	"github.com/imartinez/fronton-league/handlers"
	"github.com/imartinez/fronton-league/league"
	"github.com/imartinez/fronton-league/repositories"
	api "github.com/imartinez/fronton-league/routes"
	"github.com/imartinez/fronton-league/services"
	"github.com/imartinez/fronton-league/storage"
)

// How often completed categories are swept for.
const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
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

	// Object storage is optional; without it the PDF report endpoint
	// answers 503 instead of failing startup.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("object storage not configured, report uploads disabled")
	}

	var summaryClient services.SummaryClient
	if cfg.OpenAIAPIKey != "" {
		summaryClient = openai.NewClient(cfg.OpenAIAPIKey)
		logger.Info("OpenAI client initialized")
	} else {
		logger.Info("OPENAI_API_KEY not set, AI summaries disabled")
	}

	wsHub := league.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	playerService := services.NewPlayerService(playerRepo)
	categoryService := services.NewCategoryService(categoryRepo, teamRepo, matchRepo, logger)
	teamService := services.NewTeamService(teamRepo, playerRepo, categoryRepo)
	standingsService := services.NewStandingsService(categoryRepo, teamRepo, matchRepo)
	scheduleService := services.NewScheduleService(dbConn, categoryRepo, teamRepo, matchRepo, wsHub)
	matchService := services.NewMatchService(matchRepo, standingsService, wsHub, logger)
	importService := services.NewImportService(dbConn, categoryRepo, teamRepo, playerRepo)
	exportService := services.NewExportService(categoryRepo, teamRepo, matchRepo, standingsService)
	reportService := services.NewReportService(categoryRepo, teamRepo, matchRepo, standingsService, uploader)
	summaryService := services.NewSummaryService(categoryRepo, teamRepo, matchRepo, standingsService, summaryClient, cfg.OpenAIModel)
	dashboardService := services.NewDashboardService(playerRepo, teamRepo, categoryRepo, matchRepo)
	logger.Info("services initialized")

	// Sweep fully played categories to completed in the background.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("category completion scheduler started", slog.Duration("interval", schedulerInterval))

		if err := categoryService.AutoCompleteCategories(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := categoryService.AutoCompleteCategories(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	playerHandler := handlers.NewPlayerHandler(playerService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, teamService)
	teamHandler := handlers.NewTeamHandler(teamService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, standingsService)
	matchHandler := handlers.NewMatchHandler(matchService)
	transferHandler := handlers.NewTransferHandler(importService, exportService)
	reportHandler := handlers.NewReportHandler(reportService, summaryService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, categoryService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		playerHandler,
		categoryHandler,
		teamHandler,
		scheduleHandler,
		matchHandler,
		transferHandler,
		reportHandler,
		dashboardHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
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
