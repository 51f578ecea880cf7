package users

import (
	"errors"
	"net/http"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/api/middleware"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	svcAccounts "github.com/profilehub/profile-hub/internal/accounts"

	"github.com/gin-gonic/gin"
)

type updateMeRequest struct {
	Username *string `json:"username" binding:"omitempty,max=64"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128"`
	IsActive *bool   `json:"is_active"`
}

// MeHandler returns the authenticated account.
func (h *Handler) MeHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	user, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	common.RespondSuccess(c, toUserView(user))
}

// UpdateMeHandler applies a partial update to the authenticated account.
// Absent fields are left unchanged; a new password is re-hashed.
func (h *Handler) UpdateMeHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.UpdateSelf(c.Request.Context(), userID, svcAccounts.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, accounts.ErrDuplicateUser) {
			common.RespondError(c, http.StatusConflict, "Username or email already registered")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	common.RespondSuccess(c, toUserView(user))
}

// DeleteMeHandler removes the authenticated account together with its
// profile and stored image.
func (h *Handler) DeleteMeHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	if err := h.svc.DeleteSelf(c.Request.Context(), userID); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	common.RespondSuccessMessage(c, "User deleted", nil)
}
