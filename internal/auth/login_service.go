package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/profilehub/profile-hub/database/models"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	cryptopackage "github.com/profilehub/profile-hub/utils/crypto"
)

// ErrInvalidCredentials is returned for an unknown identifier, a wrong
// password, or a deactivated account. Deliberately uniform so the
// response does not leak which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	User              *models.User
	AccessToken       string
	AccessTokenExpiry time.Time
}

// LoginService authenticates users and issues access tokens.
type LoginService struct {
	accountsRepo *accounts.Repository
	jwtService   *JWTService
}

// NewLoginService creates a new login service.
func NewLoginService(accountsRepo *accounts.Repository, jwtService *JWTService) *LoginService {
	return &LoginService{
		accountsRepo: accountsRepo,
		jwtService:   jwtService,
	}
}

// ValidateCredentials checks a login identifier (email or username)
// and password against the store.
func (s *LoginService) ValidateCredentials(ctx context.Context, login, password string) (*models.User, bool, error) {
	user, err := s.accountsRepo.WithContext(ctx).GetUserByLogin(login)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		// A corrupt stored hash is a failed match, not a server error.
		return user, false, nil
	}

	return user, ok, nil
}

// Login validates credentials and issues an access token.
func (s *LoginService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	user, valid, err := s.ValidateCredentials(ctx, login, password)
	if err != nil {
		return nil, fmt.Errorf("failed to validate credentials: %w", err)
	}
	if !valid || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenExpiry, err := s.jwtService.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginResult{
		User:              user,
		AccessToken:       accessToken,
		AccessTokenExpiry: accessTokenExpiry,
	}, nil
}
