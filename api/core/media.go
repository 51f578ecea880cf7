package core

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/internal/assets"
	"github.com/profilehub/profile-hub/storage"

	"github.com/gin-gonic/gin"
)

// MediaHandler streams stored assets from whichever storage backend is
// configured, so callers see one URL shape regardless of backend.
type MediaHandler struct {
	assets *assets.Manager
}

func NewMediaHandler(assetManager *assets.Manager) *MediaHandler {
	return &MediaHandler{
		assets: assetManager,
	}
}

// GetAsset streams a single asset by filename.
func (h *MediaHandler) GetAsset(c *gin.Context) {
	filename := c.Param("filename")
	if !storage.IsValidIdentifier(filename) {
		common.RespondError(c, http.StatusBadRequest, "Invalid asset identifier")
		return
	}

	reader, err := h.assets.Open(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			common.RespondError(c, http.StatusNotFound, "Asset not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to read asset")
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		log.Printf("[media] failed to stream asset %s: %v", filename, err)
	}
}
