package api

import (
	"github.com/ericogr/pet-arena/internal/service"
)

// ArenaHandler groups all battle-related HTTP handlers.
type ArenaHandler struct {
	arena           *service.Arena
	sessionSecret   []byte
	adminToken      string
	startingBalance int64
}

// NewArenaHandler creates the handler set with its service, session
// secret and the admin token guarding parameter updates.
func NewArenaHandler(arena *service.Arena, sessionSecret []byte, adminToken string, startingBalance int64) *ArenaHandler {
	return &ArenaHandler{
		arena:           arena,
		sessionSecret:   sessionSecret,
		adminToken:      adminToken,
		startingBalance: startingBalance,
	}
}
