package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatorbitepcc/cindr/internal/common"
)

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "You do not have access to this resource", err)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, common.ErrConnectionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Connection not found", err)
	case errors.Is(err, common.ErrGroupNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Group not found", err)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Not found", err)
	case errors.Is(err, common.ErrEmailTaken):
		common.ErrorResponse(c, http.StatusConflict, "Email is already registered", err)
	case errors.Is(err, common.ErrAlreadyMember):
		common.ErrorResponse(c, http.StatusConflict, "Already a member of this group", err)
	case errors.Is(err, common.ErrSelfConnection):
		common.ErrorResponse(c, http.StatusBadRequest, "Cannot connect with yourself", err)
	case errors.Is(err, common.ErrNotPending):
		common.ErrorResponse(c, http.StatusConflict, "Connection is not pending", err)
	case errors.Is(err, common.ErrNotAccepted):
		common.ErrorResponse(c, http.StatusForbidden, "Connection is not accepted", err)
	case errors.Is(err, common.ErrEmptyMessage):
		common.ErrorResponse(c, http.StatusBadRequest, "Message text cannot be empty", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid input", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
