package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/game"

	"github.com/gin-gonic/gin"
)

type createPetRequest struct {
	Name         string `json:"name" binding:"required,max=32"`
	Element      string `json:"element" binding:"required"`
	Vitality     int    `json:"vitality"`
	Strength     int    `json:"strength" binding:"required"`
	Intelligence int    `json:"intelligence" binding:"required"`
}

// CreatePet mints a pet for the session account.
func (h *ArenaHandler) CreatePet(c *gin.Context) {
	var req createPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	pet, err := h.arena.MintPet(accountUUIDFrom(c), req.Name, game.Element(req.Element), req.Vitality, req.Strength, req.Intelligence)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

// ListPets returns the session account's pets.
func (h *ArenaHandler) ListPets(c *gin.Context) {
	pets, err := h.arena.ListPets(accountUUIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// GetPet returns one pet.
func (h *ArenaHandler) GetPet(c *gin.Context) {
	petID, ok := parseUintParam(c, "petID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPetID})
		return
	}
	pet, err := h.arena.GetPet(petID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// GetPetStats returns the pet's aggregate battle record.
func (h *ArenaHandler) GetPetStats(c *gin.Context) {
	petID, ok := parseUintParam(c, "petID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPetID})
		return
	}
	stats, err := h.arena.GetBattleStats(petID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPetHistory returns the pet's recent move log.
func (h *ArenaHandler) GetPetHistory(c *gin.Context) {
	petID, ok := parseUintParam(c, "petID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPetID})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.arena.GetPetBattleHistory(petID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetPetEligible reports whether the pet can enter a new battle.
func (h *ArenaHandler) GetPetEligible(c *gin.Context) {
	petID, ok := parseUintParam(c, "petID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPetID})
		return
	}
	eligible, err := h.arena.IsBattleEligible(petID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": eligible})
}
