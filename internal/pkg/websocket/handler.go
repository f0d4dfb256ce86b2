package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminIDKey is the gin context key the auth middleware stores the administrator id under
const AdminIDKey = "adminID"

// Handler upgrades admin requests to the live pending-queue feed
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Live pending-queue feed
// @Description Upgrades to a WebSocket that streams queued, approved and disapproved events as JSON
// @Tags pending-requests
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /pending-requests/feed [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	adminID := c.GetInt64(AdminIDKey)
	if adminID <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "administrator not found in context"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client
		h.logger.Error().Err(err).Int64("adminID", adminID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		adminID: adminID,
		logger:  h.logger,
	}

	if err := h.hub.join(client); err != nil {
		conn.Close()
		h.logger.Warn().Err(err).Int64("adminID", adminID).Msg("Live feed unavailable")
		return
	}

	go client.writePump()
	go client.readPump()
}
