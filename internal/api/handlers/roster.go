package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/xi-generator/internal/roster"
	"github.com/stitts-dev/xi-generator/pkg/logger"
	"github.com/stitts-dev/xi-generator/pkg/utils"
)

const maxRosterUpload = 5 << 20

type RosterHandler struct {
	repo   *roster.Repository
	logger *logrus.Entry
}

func NewRosterHandler(repo *roster.Repository) *RosterHandler {
	return &RosterHandler{
		repo:   repo,
		logger: logger.WithService("roster-handler"),
	}
}

// ImportRoster accepts a roster CSV either as the raw body or as the "file"
// field of a multipart form.
func (h *RosterHandler) ImportRoster(c *gin.Context) {
	var body io.Reader = http.MaxBytesReader(c.Writer, c.Request.Body, maxRosterUpload)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			utils.SendValidationError(c, "Missing roster file", err.Error())
			return
		}
		f, err := fh.Open()
		if err != nil {
			utils.SendValidationError(c, "Unreadable roster file", err.Error())
			return
		}
		defer f.Close()
		body = f
	}

	entries, err := roster.ParseCSV(body)
	if err != nil {
		utils.SendValidationError(c, "Invalid roster CSV", err.Error())
		return
	}

	n, err := h.repo.Import(c.Request.Context(), entries)
	if err != nil {
		h.logger.WithError(err).Error("Failed to import roster")
		utils.SendInternalError(c, "Failed to import roster")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"rows":  n,
		"teams": len(roster.Teams(entries)),
	}).Info("Roster imported")
	utils.SendSuccess(c, gin.H{
		"imported": n,
		"teams":    roster.Teams(entries),
	})
}

// ListTeams returns teams with at least one active player.
func (h *RosterHandler) ListTeams(c *gin.Context) {
	teams, err := h.repo.Teams(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list teams")
		utils.SendInternalError(c, "Failed to list teams")
		return
	}
	if teams == nil {
		teams = []string{}
	}
	utils.SendSuccessWithMeta(c, teams, &utils.Meta{Total: int64(len(teams))})
}

// GetTeam returns every roster row of a team, including inactive players,
// as JSON or, with ?format=csv, in the import format.
func (h *RosterHandler) GetTeam(c *gin.Context) {
	team := c.Param("team")
	entries, err := h.repo.ListTeam(c.Request.Context(), team)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list team")
		utils.SendInternalError(c, "Failed to list team")
		return
	}
	if len(entries) == 0 {
		utils.SendNotFound(c, "Team not found")
		return
	}
	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := roster.WriteCSV(c.Writer, entries); err != nil {
			h.logger.WithError(err).Error("Failed to write roster CSV")
		}
		return
	}
	utils.SendSuccessWithMeta(c, entries, &utils.Meta{Total: int64(len(entries))})
}

// UpdatePlayer toggles a player's active flag.
func (h *RosterHandler) UpdatePlayer(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	team, player := c.Param("team"), c.Param("player")
	err := h.repo.SetActive(c.Request.Context(), team, player, *req.Active)
	if errors.Is(err, roster.ErrPlayerNotFound) {
		utils.SendNotFound(c, "Player not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update player")
		utils.SendInternalError(c, "Failed to update player")
		return
	}
	utils.SendSuccess(c, roster.Entry{Team: team, Player: player, Active: *req.Active})
}
