package profiles

import (
	"errors"
	"net/http"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/api/middleware"
	"github.com/profilehub/profile-hub/database/repo/profiles"
	"github.com/profilehub/profile-hub/internal/assets"

	"github.com/gin-gonic/gin"
)

// CreateHandler creates the authenticated user's profile. At most one
// profile per user; an existing one yields 409.
func (h *Handler) CreateHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	upload, closeUpload, err := formUpload(c)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Failed to read image upload")
		return
	}
	defer closeUpload()

	profile, err := h.svc.Create(c.Request.Context(), userID, formPatch(c), upload)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrProfileExists):
			common.RespondError(c, http.StatusConflict, "Profile already exists")
		case errors.Is(err, assets.ErrUnsupportedType):
			common.RespondError(c, http.StatusBadRequest, "Unsupported image type")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to create profile")
		}
		return
	}

	common.RespondCreated(c, h.toProfileView(profile))
}
