package profiles

import (
	"github.com/profilehub/profile-hub/database/models"
	svcProfile "github.com/profilehub/profile-hub/internal/profile"

	"github.com/gin-gonic/gin"
)

// Handler serves profile endpoints. Create and update accept multipart
// form data so the avatar image can ride along with the text fields.
type Handler struct {
	svc *svcProfile.Service
}

// NewHandler creates a new profile handler.
func NewHandler(svc *svcProfile.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

type profileView struct {
	ID        uint    `json:"id"`
	UserID    uint    `json:"user_id"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	ImageURL  string  `json:"image_url,omitempty"`
	UpdatedAt int64   `json:"updated_at"`
}

func (h *Handler) toProfileView(profile *models.Profile) profileView {
	view := profileView{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Bio:       profile.Bio,
		Location:  profile.Location,
		Website:   profile.Website,
		UpdatedAt: profile.UpdatedAt.Unix(),
	}
	if profile.Image != nil {
		view.ImageURL = h.svc.Assets().PublicURL(*profile.Image)
	}
	return view
}

// formPatch collects the optional text fields of a multipart request.
// A field absent from the form stays nil so the merge can tell
// "not provided" apart from other cases.
func formPatch(c *gin.Context) svcProfile.Patch {
	var patch svcProfile.Patch
	if value, ok := c.GetPostForm("bio"); ok {
		patch.Bio = &value
	}
	if value, ok := c.GetPostForm("location"); ok {
		patch.Location = &value
	}
	if value, ok := c.GetPostForm("website"); ok {
		patch.Website = &value
	}
	return patch
}

// formUpload opens the optional "image" file part. Returns a nil
// upload when the part is absent; the caller must invoke the returned
// close function when the upload is non-nil.
func formUpload(c *gin.Context) (*svcProfile.Upload, func(), error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, err
	}

	upload := &svcProfile.Upload{
		Reader:   file,
		Filename: fileHeader.Filename,
	}
	return upload, func() { _ = file.Close() }, nil
}
