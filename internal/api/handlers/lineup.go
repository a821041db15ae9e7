package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/stitts-dev/xi-generator/internal/cache"
	"github.com/stitts-dev/xi-generator/internal/export"
	"github.com/stitts-dev/xi-generator/internal/lineup"
	"github.com/stitts-dev/xi-generator/internal/metrics"
	"github.com/stitts-dev/xi-generator/internal/roster"
	"github.com/stitts-dev/xi-generator/pkg/config"
	"github.com/stitts-dev/xi-generator/pkg/logger"
	"github.com/stitts-dev/xi-generator/pkg/utils"
)

type LineupHandler struct {
	repo   *roster.Repository
	cache  *cache.GenerationCache
	config *config.Config
	logger *logrus.Entry
}

// NewLineupHandler creates a handler. cache may be nil to disable caching.
func NewLineupHandler(repo *roster.Repository, generationCache *cache.GenerationCache, cfg *config.Config) *LineupHandler {
	return &LineupHandler{
		repo:   repo,
		cache:  generationCache,
		config: cfg,
		logger: logger.WithService("lineup-handler"),
	}
}

// GenerateRequest describes one batch. Players, when given, replaces the
// stored roster for this request.
type GenerateRequest struct {
	Team1          string             `json:"team1" binding:"required"`
	Team2          string             `json:"team2" binding:"required"`
	TeamCount      int                `json:"team_count"`
	MaxPerRealTeam int                `json:"max_per_real_team"`
	Mode           string             `json:"mode"`
	Weights        map[string]float64 `json:"weights"`
	KeyPlayers     []string           `json:"key_players"`
	UseKeyPlayers  *bool              `json:"use_key_players"`
	Seed           *uint64            `json:"seed"`
	Players        []roster.Entry     `json:"players,omitempty"`
}

// GenerateResponse is the JSON body of a successful generation.
type GenerateResponse struct {
	BatchID string          `json:"batch_id"`
	Teams   [2]string       `json:"teams"`
	Lineups []lineup.Record `json:"lineups"`
}

// cacheRequest is everything that determines a seeded batch.
type cacheRequest struct {
	Request     GenerateRequest    `json:"request"`
	Entries     []roster.Entry     `json:"entries"`
	Weights     map[string]float64 `json:"weights"`
	KeyPlayers  []string           `json:"key_players"`
	MaxAttempts int                `json:"max_attempts"`
}

// GenerateLineups runs a batch and returns it as JSON, or as CSV with
// ?format=csv.
func (h *LineupHandler) GenerateLineups(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.TeamCount == 0 {
		req.TeamCount = h.config.DefaultTeamCount
	}
	if req.MaxPerRealTeam == 0 {
		req.MaxPerRealTeam = h.config.DefaultMaxPerTeam
	}
	if req.TeamCount < 0 || req.TeamCount > h.config.MaxTeams {
		utils.SendValidationError(c, "Invalid team count",
			fmt.Sprintf("team_count must be between 1 and %d", h.config.MaxTeams))
		return
	}
	useKeys := req.UseKeyPlayers == nil || *req.UseKeyPlayers

	ctx := c.Request.Context()
	entries := req.Players
	if len(entries) == 0 {
		var err error
		entries, err = h.repo.Load(ctx, req.Team1, req.Team2)
		if err != nil {
			h.logger.WithError(err).Error("Failed to load roster")
			utils.SendInternalError(c, "Failed to load roster")
			return
		}
	}

	pool, err := roster.BuildPool(entries, req.Team1, req.Team2)
	if err != nil {
		sendGenerationError(c, err)
		return
	}
	mode, err := metrics.ParseMode(req.Mode)
	if err != nil {
		sendGenerationError(c, err)
		return
	}
	filled, err := metrics.Fill(pool, mode, req.Weights)
	if err != nil {
		sendGenerationError(c, err)
		return
	}
	weights, err := lineup.NewWeightVector(pool, filled)
	if err != nil {
		sendGenerationError(c, err)
		return
	}
	keyPlayers := req.KeyPlayers
	if useKeys && len(keyPlayers) == 0 {
		keyPlayers = metrics.DefaultKeyPlayers(pool)
	}

	var cacheKey string
	if req.Seed != nil && h.cache != nil {
		cacheKey, err = cache.Key(cacheRequest{
			Request:     req,
			Entries:     roster.Filter(entries, req.Team1, req.Team2),
			Weights:     filled,
			KeyPlayers:  keyPlayers,
			MaxAttempts: h.config.MaxAttempts,
		})
		if err != nil {
			h.logger.WithError(err).Warn("Failed to build cache key")
		} else if batch, hit, err := h.cache.Get(ctx, cacheKey); err != nil {
			h.logger.WithError(err).Warn("Cache lookup failed")
		} else if hit {
			h.respond(c, batch, true)
			return
		}
	}

	opts := lineup.Options{
		TeamCount:      req.TeamCount,
		MaxPerRealTeam: req.MaxPerRealTeam,
		KeyPlayers:     keyPlayers,
		UseKeyPlayers:  useKeys,
		MaxAttempts:    h.config.MaxAttempts,
		Workers:        h.config.GenerationWorkers,
	}
	if req.Seed != nil {
		opts.Source = rand.NewSource(*req.Seed)
	}

	gen, err := lineup.NewGenerator(pool, weights, opts, h.logger.WithFields(logrus.Fields{
		"team1": req.Team1,
		"team2": req.Team2,
		"mode":  mode,
	}))
	if err != nil {
		sendGenerationError(c, err)
		return
	}
	batch, err := gen.Generate(ctx)
	if err != nil {
		sendGenerationError(c, err)
		return
	}

	if cacheKey != "" {
		if err := h.cache.Set(ctx, cacheKey, batch); err != nil {
			h.logger.WithError(err).Warn("Failed to cache batch")
		}
	}
	h.respond(c, batch, false)
}

func (h *LineupHandler) respond(c *gin.Context, batch *lineup.Batch, cached bool) {
	c.Set("batch_id", batch.ID)
	logger.WithGenerationContext(batch.ID, batch.Teams[0], batch.Teams[1]).WithFields(logrus.Fields{
		"lineups": len(batch.Lineups),
		"cached":  cached,
		"format":  c.DefaultQuery("format", "json"),
	}).Info("Lineups served")

	if c.Query("format") == "csv" {
		data, err := export.CSV(batch)
		if err != nil {
			sendGenerationError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.FileName(batch, time.Now())))
		c.Data(http.StatusOK, "text/csv", data)
		return
	}

	utils.SendSuccessWithMeta(c, GenerateResponse{
		BatchID: batch.ID,
		Teams:   batch.Teams,
		Lineups: batch.Records(),
	}, &utils.Meta{
		BatchID:  batch.ID,
		Attempts: batch.Attempts,
		Cached:   cached,
		Total:    int64(len(batch.Lineups)),
	})
}
