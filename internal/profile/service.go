package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/profilehub/profile-hub/database/models"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	"github.com/profilehub/profile-hub/database/repo/profiles"
	"github.com/profilehub/profile-hub/internal/assets"
)

// Upload is an optional image attached to a profile mutation.
type Upload struct {
	Reader   io.Reader
	Filename string
}

// PublicView composes profile fields with a snapshot of the owner's
// public fields. Read-only, never persisted.
type PublicView struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Website  *string `json:"website"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Service coordinates the profile lifecycle: one profile per user,
// and image asset creation/replacement/deletion tied to profile
// mutations.
type Service struct {
	accountsRepo *accounts.Repository
	profilesRepo *profiles.Repository
	assets       *assets.Manager
}

// NewService creates a new profile service.
func NewService(accountsRepo *accounts.Repository, profilesRepo *profiles.Repository, assetManager *assets.Manager) *Service {
	return &Service{
		accountsRepo: accountsRepo,
		profilesRepo: profilesRepo,
		assets:       assetManager,
	}
}

// Assets exposes the underlying asset manager.
func (s *Service) Assets() *assets.Manager {
	return s.assets
}

// Create creates the profile for a user. Fails with
// profiles.ErrProfileExists when one already exists; the unique index
// on user_id backs the check, so two racing creates cannot both land.
func (s *Service) Create(ctx context.Context, userID uint, fields Patch, image *Upload) (*models.Profile, error) {
	// Pre-check gives the common case a clean conflict without
	// touching asset storage.
	if _, err := s.profilesRepo.WithContext(ctx).GetByUserID(userID); err == nil {
		return nil, profiles.ErrProfileExists
	} else if !errors.Is(err, profiles.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	profile := &models.Profile{UserID: userID}
	fields.Apply(profile)

	if image != nil {
		ref, err := s.assets.Store(ctx, image.Reader, image.Filename)
		if err != nil {
			return nil, err
		}
		profile.Image = &ref
	}

	if err := s.profilesRepo.WithContext(ctx).Create(profile); err != nil {
		// Lost a race after the pre-check; the stored asset is orphaned
		// otherwise.
		if profile.Image != nil {
			if delErr := s.assets.Delete(ctx, *profile.Image); delErr != nil {
				log.Printf("[profile] failed to clean up asset %s after create conflict: %v", *profile.Image, delErr)
			}
		}
		return nil, err
	}

	return profile, nil
}

// Get returns the profile owned by the user.
func (s *Service) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profilesRepo.WithContext(ctx).GetByUserID(userID)
}

// Update applies a partial update. When a new image is supplied, the
// new asset is stored before the old reference is touched: a failed
// store leaves the profile and its current image fully intact, and
// the old file is only removed once the swap is committed.
func (s *Service) Update(ctx context.Context, userID uint, fields Patch, image *Upload) (*models.Profile, error) {
	profile, err := s.profilesRepo.WithContext(ctx).GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	fields.Apply(profile)

	var oldRef, newRef string
	if image != nil {
		newRef, err = s.assets.Store(ctx, image.Reader, image.Filename)
		if err != nil {
			return nil, err
		}
		if profile.Image != nil {
			oldRef = *profile.Image
		}
		profile.Image = &newRef
	}

	if err := s.profilesRepo.WithContext(ctx).Update(profile); err != nil {
		if newRef != "" {
			if delErr := s.assets.Delete(ctx, newRef); delErr != nil {
				log.Printf("[profile] failed to clean up asset %s after update failure: %v", newRef, delErr)
			}
		}
		return nil, err
	}

	if oldRef != "" {
		if err := s.assets.Delete(ctx, oldRef); err != nil {
			log.Printf("[profile] failed to delete replaced asset %s: %v", oldRef, err)
		}
	}

	return profile, nil
}

// ClearImage removes the profile's image reference and deletes the
// stored asset.
func (s *Service) ClearImage(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profilesRepo.WithContext(ctx).GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if profile.Image == nil {
		return profile, nil
	}

	ref := *profile.Image
	profile.Image = nil
	if err := s.profilesRepo.WithContext(ctx).Update(profile); err != nil {
		return nil, err
	}

	if err := s.assets.Delete(ctx, ref); err != nil {
		log.Printf("[profile] failed to delete cleared asset %s: %v", ref, err)
	}

	return profile, nil
}

// Delete tears down the user's profile. The image asset is deleted
// first, best-effort: a storage failure is logged and never blocks
// the teardown. A missing profile is not an error.
func (s *Service) Delete(ctx context.Context, userID uint) error {
	profile, err := s.profilesRepo.WithContext(ctx).GetByUserID(userID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return nil
		}
		return err
	}

	if profile.Image != nil {
		if err := s.assets.Delete(ctx, *profile.Image); err != nil {
			log.Printf("[profile] failed to delete asset %s during teardown: %v", *profile.Image, err)
		}
	}

	return s.profilesRepo.WithContext(ctx).DeleteByUserID(userID)
}

// GetPublic joins the profile with the owning user's public fields.
func (s *Service) GetPublic(ctx context.Context, userID uint) (*PublicView, error) {
	profile, err := s.profilesRepo.WithContext(ctx).GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.accountsRepo.WithContext(ctx).GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	view := &PublicView{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Bio:      profile.Bio,
		Location: profile.Location,
		Website:  profile.Website,
	}
	if profile.Image != nil {
		view.ImageURL = s.assets.PublicURL(*profile.Image)
	}

	return view, nil
}
