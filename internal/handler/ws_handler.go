package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/middleware"
	"github.com/gatorbitepcc/cindr/internal/ws"
	"github.com/gatorbitepcc/cindr/pkg/jwt"
	"github.com/gatorbitepcc/cindr/pkg/logger"
)

// WSHandler upgrades authenticated clients to WebSocket connections
type WSHandler struct {
	hub        *ws.Hub
	jwtManager *jwt.Manager
	upgrader   websocket.Upgrader
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub, jwtManager *jwt.Manager, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSHandler{
		hub:        hub,
		jwtManager: jwtManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return allowed["*"] || allowed[origin]
			},
		},
	}
}

// Connect handles GET /ws
// @Summary Open a real-time event stream
// @Tags ws
// @Param token query string false "Access token (browsers cannot set headers on WebSocket requests)"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} common.APIResponse
// @Router /ws [get]
func (h *WSHandler) Connect(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		token := c.Query("token")
		claims, err := h.jwtManager.VerifyToken(token)
		if err != nil {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			return
		}
		userID = claims.UserID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	middleware.WSConnected()

	go func() {
		defer middleware.WSDisconnected()
		client.ReadPump()
	}()
	go client.WritePump()
}
