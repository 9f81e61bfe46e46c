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

// GroupHandler handles support group HTTP requests
type GroupHandler struct {
	groupService service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// List handles GET /groups
// @Summary List support groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} common.APIResponse{data=[]domain.SupportGroup}
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	groups, total, err := h.groupService.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, groups, &common.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Get handles GET /groups/:id
// @Summary Get a support group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} common.APIResponse{data=domain.SupportGroup}
// @Failure 404 {object} common.APIResponse
// @Router /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groupService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, group, nil)
}

// Create handles POST /groups
// @Summary Create a support group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CreateGroupRequest true "Group details"
// @Success 200 {object} common.APIResponse{data=domain.SupportGroup}
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	group, err := h.groupService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, group, nil)
}

// Join handles POST /groups/:id/join
// @Summary Join a support group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse
// @Router /groups/{id}/join [post]
func (h *GroupHandler) Join(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.groupService.Join(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "joined"}, nil)
}

// Mine handles GET /groups/mine
// @Summary List the caller's groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.SupportGroup}
// @Router /groups/mine [get]
func (h *GroupHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)

	groups, err := h.groupService.Mine(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, groups, nil)
}
