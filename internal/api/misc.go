package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"

	"github.com/gin-gonic/gin"
)

// Leaderboard returns the top rated pets.
func (h *ArenaHandler) Leaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		limit = v
	}
	stats, err := h.arena.Leaderboard(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": stats})
}

// GetParameters returns the current battle parameters.
func (h *ArenaHandler) GetParameters(c *gin.Context) {
	params, err := h.arena.GetParameters()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

// UpdateParameters replaces the battle parameters. Guarded by the
// admin middleware.
func (h *ArenaHandler) UpdateParameters(c *gin.Context) {
	var params game.BattleParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.arena.UpdateParameters(&params); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Parameters updated"})
}

// ChainHeight reports the current block height.
func (h *ArenaHandler) ChainHeight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"height": h.arena.ChainHeight()})
}
