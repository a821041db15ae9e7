package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/xi-generator/internal/lineup"
	"github.com/stitts-dev/xi-generator/internal/metrics"
	"github.com/stitts-dev/xi-generator/internal/roster"
	"github.com/stitts-dev/xi-generator/pkg/utils"
)

// sendGenerationError maps domain errors onto the response envelope.
func sendGenerationError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, lineup.ErrInvalidWeights),
		errors.Is(err, metrics.ErrOutOfRange),
		errors.Is(err, metrics.ErrUnknownMode):
		utils.SendError(c, http.StatusBadRequest,
			utils.NewAppError(utils.ErrCodeInvalidWeights, "Invalid player weights", err.Error()))
	case errors.Is(err, lineup.ErrGenerationExhausted):
		utils.SendError(c, http.StatusUnprocessableEntity,
			utils.NewAppError(utils.ErrCodeInfeasible, "Constraints could not be satisfied", err.Error()))
	case errors.Is(err, lineup.ErrEmptyPool),
		errors.Is(err, lineup.ErrPoolTooSmall),
		errors.Is(err, lineup.ErrUnknownPlayer),
		errors.Is(err, lineup.ErrUnknownRole),
		errors.Is(err, lineup.ErrInvalidConfig),
		errors.Is(err, roster.ErrMissingColumn),
		errors.Is(err, roster.ErrInvalidRow):
		utils.SendValidationError(c, "Invalid generation request", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.SendError(c, http.StatusServiceUnavailable,
			utils.NewAppError(utils.ErrCodeUnavailable, "Generation cancelled", err.Error()))
	default:
		utils.SendError(c, http.StatusInternalServerError,
			utils.NewAppError(utils.ErrCodeGenerationFailure, "Failed to generate lineups", err.Error()))
	}
}
