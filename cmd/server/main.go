package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/database"
	"github.com/timtruong/timtruong-backend/internal/handler"
	"github.com/timtruong/timtruong-backend/internal/logger"
	"github.com/timtruong/timtruong-backend/internal/middleware"
	"github.com/timtruong/timtruong-backend/internal/repository"
	"github.com/timtruong/timtruong-backend/internal/router"
	"github.com/timtruong/timtruong-backend/internal/service"
	"github.com/timtruong/timtruong-backend/internal/validator"
	"github.com/timtruong/timtruong-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("legacy_policy", string(cfg.LegacyPolicy)).
		Msg("Starting TimTruong Backend")

	if _, known := config.ParseLegacyCombinationPolicy(cfg.LegacyPolicyRaw); !known {
		log.Warn().
			Str("value", cfg.LegacyPolicyRaw).
			Str("using", string(cfg.LegacyPolicy)).
			Msg("Unknown LEGACY_COMBINATION_POLICY")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	// Redis only backs rate limiting and search analytics; without it the
	// API still answers recommendations.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting and search log disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	universityRepo := repository.NewUniversityRepository(pool)
	campusRepo := repository.NewCampusRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	requirementRepo := repository.NewAdmissionRequirementRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	searchEventRepo := repository.NewSearchEventRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	recommendationService := service.NewRecommendationService(requirementRepo, cfg.LegacyPolicy, log)
	searchLogService := service.NewSearchLogService(rdb, cfg.SearchLogEnabled, log)
	universityService := service.NewUniversityService(universityRepo, log)
	campusService := service.NewCampusService(campusRepo, universityRepo, log)
	majorService := service.NewMajorService(majorRepo, universityRepo, log)
	requirementService := service.NewAdmissionRequirementService(requirementRepo, majorRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, searchLogService, log)
	importService := service.NewImportService(universityRepo, majorRepo, requirementRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Recommendation: handler.NewRecommendationHandler(recommendationService, searchLogService, log),
		University:     handler.NewUniversityHandler(universityService, log),
		Campus:         handler.NewCampusHandler(campusService, log),
		Major:          handler.NewMajorHandler(majorService, log),
		Requirement:    handler.NewAdmissionRequirementHandler(requirementService, log),
		Reference:      handler.NewReferenceHandler(),
		Dashboard:      handler.NewDashboardHandler(dashboardService, log),
		Import:         handler.NewImportHandler(importService, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if searchLogService.Enabled() {
		searchLogWorker := worker.NewSearchLogWorker(searchEventRepo, rdb, log)
		workers.Add(1)
		go func() {
			defer workers.Done()
			searchLogWorker.Start(workerCtx)
		}()
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	recommendLimiter := middleware.NewRateLimiter(rdb, "recommend", cfg.RecommendRateLimit, cfg.RecommendRateWindow, log)
	r := router.SetupRouter(handlers, recommendLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the queue to drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
