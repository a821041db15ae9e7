package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stitts-dev/xi-generator/internal/api"
	"github.com/stitts-dev/xi-generator/internal/cache"
	"github.com/stitts-dev/xi-generator/internal/roster"
	"github.com/stitts-dev/xi-generator/pkg/config"
	"github.com/stitts-dev/xi-generator/pkg/database"
	"github.com/stitts-dev/xi-generator/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DBDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := roster.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	seedRoster(repo, cfg.RosterPath)

	// Redis is optional; without it seeded batches are simply not cached
	var generationCache *cache.GenerationCache
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		var redisClient *redis.Client
		redisClient, err = cache.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		generationCache = cache.NewGenerationCache(redisClient, cfg.CacheTTL, logger.WithService("generation-cache"))
	}

	router := api.NewRouter(cfg, db, generationCache)

	log.Info("=== REGISTERED ROUTES ===")
	for _, route := range router.Routes() {
		log.Infof("%s %s", route.Method, route.Path)
	}
	log.Info("=========================")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// seedRoster imports the roster file on startup when the store is empty.
func seedRoster(repo *roster.Repository, path string) {
	log := logger.WithService("xi-generator").WithField("roster_path", path)
	ctx := context.Background()

	teams, err := repo.Teams(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to inspect roster store")
		return
	}
	if len(teams) > 0 || path == "" {
		return
	}

	entries, err := roster.LoadFile(path)
	if err != nil {
		log.WithError(err).Warn("No roster loaded; import one via POST /api/v1/rosters/import")
		return
	}
	n, err := repo.Import(ctx, entries)
	if err != nil {
		log.WithError(err).Error("Failed to import roster file")
		return
	}
	log.WithField("rows", n).Info("Roster imported from file")
}
