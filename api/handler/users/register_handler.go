package users

import (
	"errors"
	"net/http"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	svcAccounts "github.com/profilehub/profile-hub/internal/accounts"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	FullName string `json:"full_name" binding:"max=255"`
}

// RegisterHandler creates a new account.
func (h *Handler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var fullName *string
	if req.FullName != "" {
		fullName = &req.FullName
	}

	user, err := h.svc.Register(c.Request.Context(), svcAccounts.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: fullName,
	})
	if err != nil {
		if errors.Is(err, accounts.ErrDuplicateUser) {
			common.RespondError(c, http.StatusConflict, "Username or email already registered")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	common.RespondCreated(c, toUserView(user))
}
