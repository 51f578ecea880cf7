package profile

import (
	"strings"

	"github.com/profilehub/profile-hub/database/models"
)

// Patch carries optional text-field updates for a profile. A nil
// field was not provided. A provided-but-blank value is ignored as
// well: blanking a text field is not supported, and an empty string
// in an update must leave the stored value unchanged. This mirrors
// the long-standing client contract and is covered by tests, so keep
// the two cases collapsed on purpose.
type Patch struct {
	Bio      *string
	Location *string
	Website  *string
}

// Apply merges the patch into the profile, field by field, and
// reports whether anything changed.
func (p Patch) Apply(profile *models.Profile) bool {
	changed := false
	if applyText(&profile.Bio, p.Bio) {
		changed = true
	}
	if applyText(&profile.Location, p.Location) {
		changed = true
	}
	if applyText(&profile.Website, p.Website) {
		changed = true
	}
	return changed
}

// applyText copies a present, non-blank value into dst.
func applyText(dst **string, src *string) bool {
	if src == nil || strings.TrimSpace(*src) == "" {
		return false
	}
	value := *src
	*dst = &value
	return true
}
