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

// GetMeHandler returns the authenticated user's profile.
func (h *Handler) GetMeHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			common.RespondError(c, http.StatusNotFound, "Profile not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	common.RespondSuccess(c, h.toProfileView(profile))
}

// UpdateMeHandler applies a partial update to the authenticated user's
// profile. Blank text fields leave the stored values unchanged; a new
// image replaces the previous one.
func (h *Handler) UpdateMeHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	upload, closeUpload, err := formUpload(c)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Failed to read image upload")
		return
	}
	defer closeUpload()

	profile, err := h.svc.Update(c.Request.Context(), userID, formPatch(c), upload)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrProfileNotFound):
			common.RespondError(c, http.StatusNotFound, "Profile not found")
		case errors.Is(err, assets.ErrUnsupportedType):
			common.RespondError(c, http.StatusBadRequest, "Unsupported image type")
		default:
			common.RespondError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	common.RespondSuccess(c, h.toProfileView(profile))
}

// ClearImageHandler detaches and deletes the profile image.
func (h *Handler) ClearImageHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	profile, err := h.svc.ClearImage(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			common.RespondError(c, http.StatusNotFound, "Profile not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to remove profile image")
		return
	}

	common.RespondSuccess(c, h.toProfileView(profile))
}
