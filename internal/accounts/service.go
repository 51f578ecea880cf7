package accounts

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/profilehub/profile-hub/database"
	"github.com/profilehub/profile-hub/database/models"
	accountsrepo "github.com/profilehub/profile-hub/database/repo/accounts"
	profilesrepo "github.com/profilehub/profile-hub/database/repo/profiles"
	"github.com/profilehub/profile-hub/internal/assets"
	cryptopackage "github.com/profilehub/profile-hub/utils/crypto"
	"gorm.io/gorm"
)

// RegisterInput is the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName *string
	IsActive *bool
}

// UpdateInput is a partial self-update. Nil fields are left unchanged;
// a non-nil Password is re-hashed before storage.
type UpdateInput struct {
	Username *string
	Email    *string
	FullName *string
	Password *string
	IsActive *bool
}

// Service manages account registration and self-service mutations.
type Service struct {
	accountsRepo *accountsrepo.Repository
	profilesRepo *profilesrepo.Repository
	assets       *assets.Manager
}

// NewService creates a new accounts service.
func NewService(accountsRepo *accountsrepo.Repository, profilesRepo *profilesrepo.Repository, assetManager *assets.Manager) *Service {
	return &Service{
		accountsRepo: accountsRepo,
		profilesRepo: profilesRepo,
		assets:       assetManager,
	}
}

// Register creates a new account with a hashed password. Duplicate
// username or email yields accountsrepo.ErrDuplicateUser, whether
// caught by the pre-check or by the unique indexes.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	taken, err := s.accountsRepo.WithContext(ctx).CredentialsTaken(username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing credentials: %w", err)
	}
	if taken {
		return nil, accountsrepo.ErrDuplicateUser
	}

	hashed, err := cryptopackage.GenerateFromPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		FullName: input.FullName,
		IsActive: true,
		Password: hashed,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.accountsRepo.WithContext(ctx).CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID returns a user by id.
func (s *Service) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.accountsRepo.WithContext(ctx).GetUserByID(userID)
}

// List returns users newest-first.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.accountsRepo.WithContext(ctx).GetAllUsers(page, pageSize)
}

// UpdateSelf applies a partial update to the acting user's account.
func (s *Service) UpdateSelf(ctx context.Context, userID uint, input UpdateInput) (*models.User, error) {
	user, err := s.accountsRepo.WithContext(ctx).GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && strings.TrimSpace(*input.Username) != "" {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.FullName != nil {
		user.FullName = input.FullName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := cryptopackage.GenerateFromPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.accountsRepo.WithContext(ctx).UpdateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteSelf removes the account. The profile image asset is deleted
// first (best-effort, never blocks teardown); the profile row and the
// user row are then removed in one transaction.
func (s *Service) DeleteSelf(ctx context.Context, userID uint) error {
	if _, err := s.accountsRepo.WithContext(ctx).GetUserByID(userID); err != nil {
		return err
	}

	if profile, err := s.profilesRepo.WithContext(ctx).GetByUserID(userID); err == nil && profile.Image != nil {
		if err := s.assets.Delete(ctx, *profile.Image); err != nil {
			log.Printf("[accounts] failed to delete asset %s during account teardown: %v", *profile.Image, err)
		}
	}

	return database.Transaction(s.accountsRepo.DB().WithContext(ctx), func(tx *gorm.DB) error {
		if err := s.profilesRepo.WithTx(tx).DeleteByUserID(userID); err != nil {
			return err
		}
		return s.accountsRepo.WithTx(tx).DeleteUser(userID)
	})
}
