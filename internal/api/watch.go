package api

import (
	"net/http"
	"time"

	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const watchInterval = 2 * time.Second

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WatchBattle streams battle snapshots over a websocket until the
// battle reaches a terminal status or the client disconnects.
func (h *ArenaHandler) WatchBattle(c *gin.Context) {
	battleID, ok := parseUintParam(c, "battleID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	if _, err := h.arena.GetBattle(battleID); err != nil {
		respondServiceError(c, err)
		return
	}

	conn, err := watchUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{
			constants.LogFieldBattleID: battleID,
		})
		return
	}
	defer conn.Close()

	// Drain control frames so pong/close handling keeps working.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		b, err := h.arena.GetBattle(battleID)
		if err != nil {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""),
				time.Now().Add(time.Second))
			return
		}
		if err := conn.WriteJSON(b); err != nil {
			return
		}
		if b.Status.Terminal() {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(b.Status)),
				time.Now().Add(time.Second))
			return
		}
		<-ticker.C
	}
}
