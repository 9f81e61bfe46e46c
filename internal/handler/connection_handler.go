package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/middleware"
	"github.com/gatorbitepcc/cindr/internal/service"
)

// ConnectionHandler handles connection lifecycle HTTP requests
type ConnectionHandler struct {
	connectionService service.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(connectionService service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// Request handles POST /connections
// @Summary Send a connection request (swipe right)
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.RequestConnectionRequest true "Target user"
// @Success 200 {object} common.APIResponse{data=domain.RequestConnectionResponse}
// @Failure 400 {object} common.APIResponse
// @Router /connections [post]
func (h *ConnectionHandler) Request(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.RequestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	result, err := h.connectionService.Request(userID, req.ToUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.CountConnectionResult(result.Result)
	common.SuccessResponse(c, result, nil)
}

// Pending handles GET /connections/pending
// @Summary List incoming pending requests
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.ConnectionRequestItem}
// @Router /connections/pending [get]
func (h *ConnectionHandler) Pending(c *gin.Context) {
	userID := middleware.GetUserID(c)

	items, err := h.connectionService.PendingRequests(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, items, nil)
}

// Accept handles POST /connections/:id/accept
// @Summary Accept a pending connection request
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Success 200 {object} common.APIResponse{data=domain.Connection}
// @Failure 403 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse
// @Router /connections/{id}/accept [post]
func (h *ConnectionHandler) Accept(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conn, err := h.connectionService.Accept(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, conn, nil)
}

// Decline handles DELETE /connections/:id
// @Summary Decline a request or dissolve a connection
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Success 200 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Router /connections/{id} [delete]
func (h *ConnectionHandler) Decline(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.connectionService.Decline(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "connection removed"}, nil)
}
