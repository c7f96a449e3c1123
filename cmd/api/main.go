package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aarogyaai/backend/internal/adapters/cache"
	"github.com/aarogyaai/backend/internal/adapters/database"
	"github.com/aarogyaai/backend/internal/adapters/events"
	"github.com/aarogyaai/backend/internal/adapters/fallback"
	"github.com/aarogyaai/backend/internal/adapters/providers/triage"
	"github.com/aarogyaai/backend/internal/adapters/search"
	"github.com/aarogyaai/backend/internal/api/handlers"
	"github.com/aarogyaai/backend/internal/api/middleware"
	"github.com/aarogyaai/backend/internal/api/routes"
	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/postgres"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/redis"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/typesense"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
	"github.com/aarogyaai/backend/pkg/config"
)

func main() {
	// Load .env if present (local development convenience)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The service runs without it, losing caching
	// and live registry events.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense client. Optional as well: without it free-text
	// directory queries are served by the database.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Typesense client, continuing without search index")
		typesenseClient = nil
	} else {
		logger.Info().Msg("Typesense client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		logger.Info().Msg("event bus initialized")
	} else {
		logger.Info().Msg("event bus disabled (Redis not available)")
	}

	// Initialize adapters

	baseDoctorAdapter := database.NewDoctorAdapter(pgClient)

	var doctorAdapter repositories.DoctorRepository
	if cacheProvider != nil {
		doctorAdapter = database.NewCachedDoctorAdapter(baseDoctorAdapter, cacheProvider)
		logger.Info().Msg("doctor adapter wrapped with caching layer")
	} else {
		doctorAdapter = baseDoctorAdapter
		logger.Info().Msg("doctor adapter running without cache")
	}

	applicationAdapter := database.NewApplicationAdapter(pgClient)
	adminUserAdapter := database.NewAdminUserAdapter(pgClient)

	var searchRepo repositories.DoctorSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Initialize triage provider
	triageProvider, triageCleanup, err := triage.NewTriageProvider(ctx, &cfg.Triage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize triage provider")
	}
	defer triageCleanup()
	logger.Info().Str("provider", cfg.Triage.Provider).Msg("triage provider initialized")

	seeds := fallback.NewSeedRegistry()

	// Initialize services

	registryService := services.NewRegistryService(doctorAdapter, searchRepo, seeds, eventBus)
	triageService := services.NewTriageSearchService(triageProvider, doctorAdapter, seeds, metrics)
	applicationService := services.NewApplicationService(applicationAdapter, registryService)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("ADMIN_JWT_SECRET must be set")
	}
	authService := services.NewAdminAuthService(
		adminUserAdapter,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// Start cache invalidation so admin writes propagate across instances
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			logger.Warn().Err(err).Msg("failed to start cache invalidation service")
		}
	}

	// Start cache warming so cold reads after a deploy stay fast
	if cacheProvider != nil {
		warmingService := services.NewCacheWarmingService(doctorAdapter, cacheProvider)
		go warmingService.StartPeriodicWarming(ctx, 5*time.Minute)
		logger.Info().Msg("cache warming service started")
	}

	// Initialize handlers

	triageHandler := handlers.NewTriageHandler(triageService)
	doctorHandler := handlers.NewDoctorHandler(registryService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	authHandler := handlers.NewAuthHandler(authService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		logger.Info().Msg("cache middleware initialized")
	}

	// Set up router

	router := routes.NewRouter(
		triageHandler,
		doctorHandler,
		applicationHandler,
		authHandler,
		sseHandler,
		authService,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No write timeout: the registry event stream holds its
		// connection open indefinitely.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("error during server shutdown")
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing event bus")
		}
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	logger.Info().Msg("server stopped")
}
