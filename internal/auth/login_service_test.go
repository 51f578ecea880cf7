package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/profilehub/profile-hub/database/models"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	cryptopackage "github.com/profilehub/profile-hub/utils/crypto"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLoginService(t *testing.T) (*LoginService, *accounts.Repository) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Profile{})
	assert.NoError(t, err)

	repo := accounts.NewRepository(db)
	jwtService, err := NewJWTService(testSecret, 30*time.Minute)
	assert.NoError(t, err)

	return NewLoginService(repo, jwtService), repo
}

func seedUser(t *testing.T, repo *accounts.Repository, username, email, password string, active bool) *models.User {
	hash, err := cryptopackage.GenerateFromPassword(password)
	assert.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: active,
	}
	err = repo.CreateUser(user)
	assert.NoError(t, err)
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, repo := setupLoginService(t)
	seedUser(t, repo, "ana", "ana@example.com", "pw1secret", true)

	result, err := svc.Login(context.Background(), "ana@example.com", "pw1secret")
	assert.NoError(t, err)
	assert.Equal(t, "ana", result.User.Username)
	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.AccessTokenExpiry.After(time.Now()))
}

func TestLogin_ByUsername(t *testing.T) {
	svc, repo := setupLoginService(t)
	seedUser(t, repo, "ana", "ana@example.com", "pw1secret", true)

	result, err := svc.Login(context.Background(), "ana", "pw1secret")
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", result.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := setupLoginService(t)
	seedUser(t, repo, "ana", "ana@example.com", "pw1secret", true)

	_, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := setupLoginService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw1secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo := setupLoginService(t)
	seedUser(t, repo, "ana", "ana@example.com", "pw1secret", false)

	// Right password, deactivated account: same uniform error.
	_, err := svc.Login(context.Background(), "ana@example.com", "pw1secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	svc, repo := setupLoginService(t)
	user := seedUser(t, repo, "ana", "ana@example.com", "pw1secret", true)

	result, err := svc.Login(context.Background(), "ana", "pw1secret")
	assert.NoError(t, err)

	claims, err := svc.jwtService.VerifyToken(result.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}
