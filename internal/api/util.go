package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/service"

	"github.com/gin-gonic/gin"
)

// parseUintParam parses a numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// respondServiceError maps the service error taxonomy onto HTTP status
// codes.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrBattleNotFound),
		errors.Is(err, service.ErrPetNotFound),
		errors.Is(err, service.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotPetOwner),
		errors.Is(err, service.ErrNotBattleParticipant),
		errors.Is(err, service.ErrNotYourTurn):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidBattleStatus),
		errors.Is(err, service.ErrBattleAlreadyComplete),
		errors.Is(err, service.ErrRewardsAlreadyClaimed),
		errors.Is(err, service.ErrPetAlreadyInBattle),
		errors.Is(err, service.ErrPetAlreadyQueued),
		errors.Is(err, service.ErrPetNotQueued),
		errors.Is(err, service.ErrTooManyActiveBattles),
		errors.Is(err, service.ErrTooManyStatusEffects),
		errors.Is(err, service.ErrBattleHistoryTooLong),
		errors.Is(err, service.ErrComboCounterMaximum),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInsufficientEnergy),
		errors.Is(err, service.ErrPreventedByStatusEffect):
		status = http.StatusConflict
	case errors.Is(err, service.ErrBattleExpired):
		status = http.StatusGone
	case errors.Is(err, service.ErrSelfChallenge),
		errors.Is(err, service.ErrInvalidMove),
		errors.Is(err, service.ErrInvalidStatusEffect),
		errors.Is(err, service.ErrInvalidPet),
		errors.Is(err, service.ErrInvalidParameters):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(status, gin.H{constants.JSONKeyError: err.Error()})
}
