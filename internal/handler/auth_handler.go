package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatorbitepcc/cindr/internal/common"
	"github.com/gatorbitepcc/cindr/internal/middleware"
	"github.com/gatorbitepcc/cindr/internal/service"
)

const refreshCookieName = "cindr_refresh"

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register handles POST /auth/register
// @Summary Create a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterRequest true "Registration payload"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Failure 409 {object} common.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// Login handles POST /auth/login
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Login payload"
// @Success 200 {object} common.APIResponse{data=service.LoginResponse}
// @Failure 401 {object} common.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	common.SuccessResponse(c, result, nil)
}

// Refresh handles POST /auth/refresh
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Produce json
// @Success 200 {object} common.APIResponse{data=service.TokenPair}
// @Failure 401 {object} common.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	// Cookie first, JSON body as fallback for non-browser clients
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing refresh token", nil)
			return
		}
		refreshToken = body.RefreshToken
	}

	pair, err := h.authService.RefreshToken(refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	common.SuccessResponse(c, pair, nil)
}

// Logout handles POST /auth/logout
// @Summary Clear the refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
	common.SuccessResponse(c, gin.H{"message": "logged out"}, nil)
}

// Me handles GET /auth/me
// @Summary Get the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Failure 401 {object} common.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.userService.GetMe(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	// 30 days, httpOnly; Secure is left to the TLS terminator in front
	c.SetCookie(refreshCookieName, token, 30*24*3600, "/", "", false, true)
}
