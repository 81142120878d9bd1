package api

import (
	"net/http"

	"github.com/ericogr/pet-arena/internal/constants"

	"github.com/gin-gonic/gin"
)

type matchmakingRequest struct {
	PetID uint `json:"pet_id" binding:"required"`
}

// EnterMatchmaking enqueues a pet. When an opponent is already waiting
// the created battle comes back in the response, otherwise battle is null.
func (h *ArenaHandler) EnterMatchmaking(c *gin.Context) {
	var req matchmakingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.arena.EnterMatchmaking(accountUUIDFrom(c), req.PetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": b})
}

// LeaveMatchmaking removes a pet from the queue.
func (h *ArenaHandler) LeaveMatchmaking(c *gin.Context) {
	var req matchmakingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.arena.LeaveMatchmaking(accountUUIDFrom(c), req.PetID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Left matchmaking queue"})
}
