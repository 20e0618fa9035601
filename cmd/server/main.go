package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snuhangout/api/internal/cache"
	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/config"
	"github.com/snuhangout/api/internal/database"
	"github.com/snuhangout/api/internal/handler"
	"github.com/snuhangout/api/internal/jobs"
	"github.com/snuhangout/api/internal/middleware"
	"github.com/snuhangout/api/internal/repository"
	"github.com/snuhangout/api/internal/service"
	"github.com/snuhangout/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	if err := runMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis backs the match cache and the rate limiter, both of which fail open
	redisClient := cache.NewRedis(cache.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := cache.Ping(pingCtx, redisClient); err != nil {
		slog.Warn("redis unavailable, continuing without cache", slog.String("error", err.Error()))
	}
	pingCancel()

	// Compatibility engine
	engine, err := loadEngine(cfg.Matching.RegistryPath)
	if err != nil {
		slog.Error("failed to load question registry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Token validation against the identity provider's public key
	jwtService, err := jwt.NewService(jwt.Config{
		PublicKeyPath: cfg.Auth.PublicKeyPath,
		Issuer:        cfg.Auth.Issuer,
		Leeway:        cfg.Auth.Leeway,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	profileRepo := repository.NewDatingProfileRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	matchCache := cache.NewMatchCache(redisClient, cfg.Matching.CacheTTL)

	// Initialize services
	datingService := service.NewDatingService(service.DatingServiceConfig{
		ProfileRepo: profileRepo,
		Engine:      engine,
		Cache:       matchCache,
	})
	matchService := service.NewMatchService(service.MatchServiceConfig{
		ProfileRepo:    profileRepo,
		ConnectionRepo: connectionRepo,
		Engine:         engine,
		Cache:          matchCache,
		MinScore:       &cfg.Matching.MinScore,
	})
	connectionService := service.NewConnectionService(service.ConnectionServiceConfig{
		ConnectionRepo: connectionRepo,
		ProfileRepo:    profileRepo,
		Engine:         engine,
		Cache:          matchCache,
	})

	// Initialize handlers
	datingHandler := handler.NewDatingHandler(datingService)
	matchHandler := handler.NewMatchHandler(matchService)
	connectionHandler := handler.NewConnectionHandler(connectionService)
	healthHandler := handler.NewHealthHandler(
		handler.HealthCheck{Name: "database", Check: db.Ping},
		handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return cache.Ping(ctx, redisClient)
		}},
	)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Rate:   cfg.RateLimit.Requests,
			Window: cfg.RateLimit.Window,
		})
	}

	wrapped := newRouter(routerDeps{
		dating:     datingHandler,
		match:      matchHandler,
		connection: connectionHandler,
		health:     healthHandler,
		auth: middleware.AuthConfig{
			Validator:          jwtService,
			AllowedEmailDomain: cfg.Auth.AllowedEmailDomain,
		},
		limiter:        limiter,
		allowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Background cache warmer
	var warmer *jobs.MatchCacheWarmer
	if cfg.Matching.RefreshInterval > 0 {
		warmer = jobs.NewMatchCacheWarmer(matchService, cfg.Matching.RefreshInterval, cfg.Matching.RefreshBatch)
		warmer.Start()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.Int("questions", len(engine.Questions())),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	if warmer != nil {
		warmer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

func runMigrations(ctx context.Context, db database.Database, dir string) error {
	if dir == "" {
		found, err := database.FindMigrationsDir()
		if err != nil {
			return err
		}
		dir = found
	}

	migrations, err := database.LoadMigrations(dir)
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, db, migrations); err != nil {
		return err
	}

	slog.Info("migrations applied", slog.String("dir", dir), slog.Int("count", len(migrations)))
	return nil
}

func loadEngine(registryPath string) (*compat.Engine, error) {
	cfg := compat.DefaultConfig()
	if registryPath != "" {
		loaded, err := compat.LoadConfigFile(registryPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		slog.Info("loaded question registry", slog.String("path", registryPath))
	}
	return compat.NewEngine(cfg)
}
