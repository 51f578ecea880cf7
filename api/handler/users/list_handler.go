package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/database/repo/accounts"

	"github.com/gin-gonic/gin"
)

type listUsersResponse struct {
	Users    []userView `json:"users"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ListHandler returns a page of accounts.
func (h *Handler) ListHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	common.RespondSuccess(c, listUsersResponse{
		Users:    views,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetHandler returns a single account by id.
func (h *Handler) GetHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			common.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	common.RespondSuccess(c, toUserView(user))
}
