package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/middleware"
	"github.com/gatorbitepcc/cindr/internal/service"
)

// ChatHandler handles chat thread and message HTTP requests
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Threads handles GET /chats
// @Summary List the caller's chat threads, most recent activity first
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.ChatThread}
// @Router /chats [get]
func (h *ChatHandler) Threads(c *gin.Context) {
	userID := middleware.GetUserID(c)

	threads, err := h.chatService.Threads(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, threads, nil)
}

// Messages handles GET /chats/:id/messages
// @Summary Get a chat's message log, oldest first
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} common.APIResponse{data=[]domain.ChatMessage}
// @Failure 403 {object} common.APIResponse
// @Router /chats/{id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	messages, total, err := h.chatService.Messages(c.Param("id"), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, messages, &common.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// SendMessage handles POST /chats/:id/messages
// @Summary Send a message into an accepted connection's chat
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Param request body domain.SendMessageRequest true "Message text"
// @Success 200 {object} common.APIResponse{data=domain.ChatMessage}
// @Failure 400 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Router /chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	msg, err := h.chatService.SendMessage(c.Param("id"), userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, msg, nil)
}
