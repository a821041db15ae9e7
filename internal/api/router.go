package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stitts-dev/xi-generator/internal/api/handlers"
	"github.com/stitts-dev/xi-generator/internal/api/middleware"
	"github.com/stitts-dev/xi-generator/internal/cache"
	"github.com/stitts-dev/xi-generator/internal/roster"
	"github.com/stitts-dev/xi-generator/pkg/config"
	"github.com/stitts-dev/xi-generator/pkg/database"
	"github.com/stitts-dev/xi-generator/pkg/logger"
)

// NewRouter builds the engine with middleware, probes, metrics and the
// /api/v1 routes. generationCache may be nil.
func NewRouter(cfg *config.Config, db *database.DB, generationCache *cache.GenerationCache) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.GetLogger()))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(db, generationCache)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Middleware())
	SetupRoutes(apiV1, roster.NewRepository(db), generationCache, cfg)

	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, repo *roster.Repository, generationCache *cache.GenerationCache, cfg *config.Config) {
	lineupHandler := handlers.NewLineupHandler(repo, generationCache, cfg)
	rosterHandler := handlers.NewRosterHandler(repo)

	group.POST("/lineups/generate", lineupHandler.GenerateLineups)

	rosters := group.Group("/rosters")
	{
		rosters.POST("/import", rosterHandler.ImportRoster)
		rosters.GET("/teams", rosterHandler.ListTeams)
		rosters.GET("/:team", rosterHandler.GetTeam)
		rosters.PATCH("/:team/players/:player", rosterHandler.UpdatePlayer)
	}
}
