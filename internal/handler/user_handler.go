package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/domain"
	"github.com/gatorbitepcc/cindr/internal/middleware"
	"github.com/gatorbitepcc/cindr/internal/service"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /users/:id
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} common.APIResponse{data=domain.DisplayProfile}
// @Failure 404 {object} common.APIResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, profile, nil)
}

// UpdateProfile handles PATCH /users/me
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// UpdatePhotos handles PUT /users/me/photos
// @Summary Replace the caller's photo gallery
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UpdatePhotosRequest true "Photo URLs, at most 12"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Failure 400 {object} common.APIResponse
// @Router /users/me/photos [put]
func (h *UserHandler) UpdatePhotos(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.UpdatePhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	user, err := h.userService.UpdatePhotos(userID, req.Photos)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// Feed handles GET /users/feed
// @Summary Get the next swipe candidate
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param exclude query string false "Comma-separated user IDs already seen this session"
// @Success 200 {object} common.APIResponse{data=domain.DisplayProfile}
// @Failure 404 {object} common.APIResponse
// @Router /users/feed [get]
func (h *UserHandler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var excludeIDs []string
	if raw := c.Query("exclude"); raw != "" {
		excludeIDs = strings.Split(raw, ",")
	}

	profile, err := h.userService.NextCandidate(userID, excludeIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, profile, nil)
}
