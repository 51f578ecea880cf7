package profiles

import (
	"context"
	"errors"

	"github.com/profilehub/profile-hub/database/models"
	"gorm.io/gorm"
)

// ErrProfileNotFound is returned when a user has no profile.
var ErrProfileNotFound = errors.New("profile not found")

// ErrProfileExists is returned when the user already has a profile.
var ErrProfileExists = errors.New("profile already exists")

// Repository is the profiles repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new profiles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// WithContext returns a repository bound to ctx.
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// GetByUserID fetches the profile owned by the given user.
func (r *Repository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Create inserts a profile. The unique index on user_id is the
// authority for the one-profile-per-user invariant; a violation is
// translated to ErrProfileExists so a create racing another create
// fails cleanly instead of inserting a second row.
func (r *Repository) Create(profile *models.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

// Update persists all fields of the profile record.
func (r *Repository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// DeleteByUserID removes the profile owned by the given user.
func (r *Repository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
