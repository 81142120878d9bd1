package api

import (
	"net/http"

	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"

	"github.com/gin-gonic/gin"
)

type createChallengeRequest struct {
	PetID       uint `json:"pet_id" binding:"required"`
	TargetPetID uint `json:"target_pet_id" binding:"required"`
}

// CreateChallenge opens a battle challenge against another pet.
func (h *ArenaHandler) CreateChallenge(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.arena.CreateChallenge(accountUUIDFrom(c), req.PetID, req.TargetPetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *ArenaHandler) battleIDParam(c *gin.Context) (uint, bool) {
	battleID, ok := parseUintParam(c, "battleID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
	}
	return battleID, ok
}

// GetBattle returns a battle snapshot.
func (h *ArenaHandler) GetBattle(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	b, err := h.arena.GetBattle(battleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AcceptChallenge activates a pending challenge.
func (h *ArenaHandler) AcceptChallenge(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	b, err := h.arena.AcceptChallenge(accountUUIDFrom(c), battleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeclineChallenge refuses a pending challenge.
func (h *ArenaHandler) DeclineChallenge(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	if err := h.arena.DeclineChallenge(accountUUIDFrom(c), battleID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Challenge declined"})
}

type moveRequest struct {
	Move string `json:"move" binding:"required"`
}

// ExecuteMove plays one basic move.
func (h *ArenaHandler) ExecuteMove(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, result, err := h.arena.ExecuteMove(accountUUIDFrom(c), battleID, game.BattleMove(req.Move))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": b, "result": result})
}

// UseUltimateMove plays the energy-gated ultimate.
func (h *ArenaHandler) UseUltimateMove(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	b, result, err := h.arena.UseUltimateMove(accountUUIDFrom(c), battleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": b, "result": result})
}

type effectRequest struct {
	Effect string `json:"effect" binding:"required"`
}

// ApplyStatusEffect inflicts a condition on the opponent.
func (h *ArenaHandler) ApplyStatusEffect(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	var req effectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.arena.ApplyStatusEffect(accountUUIDFrom(c), battleID, game.StatusEffectKind(req.Effect))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ForfeitBattle concedes an active battle.
func (h *ArenaHandler) ForfeitBattle(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	b, err := h.arena.ForfeitBattle(accountUUIDFrom(c), battleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ClaimRewards pays out a finalized battle.
func (h *ArenaHandler) ClaimRewards(c *gin.Context) {
	battleID, ok := h.battleIDParam(c)
	if !ok {
		return
	}
	amount, err := h.arena.ClaimRewards(accountUUIDFrom(c), battleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}
