package profiles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	"github.com/profilehub/profile-hub/database/repo/profiles"

	"github.com/gin-gonic/gin"
)

// GetPublicHandler returns any user's profile joined with the owner's
// public account fields. No authentication required.
func (h *Handler) GetPublicHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	view, err := h.svc.GetPublic(c.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) || errors.Is(err, accounts.ErrUserNotFound) {
			common.RespondError(c, http.StatusNotFound, "Profile not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	common.RespondSuccess(c, view)
}
