package users

import (
	"github.com/profilehub/profile-hub/database/models"
	svcAccounts "github.com/profilehub/profile-hub/internal/accounts"
)

// Handler serves account registration and self-service endpoints.
type Handler struct {
	svc *svcAccounts.Service
}

// NewHandler creates a new account handler.
func NewHandler(svc *svcAccounts.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

type userView struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	IsActive  bool    `json:"is_active"`
	CreatedAt int64   `json:"created_at"`
}

func toUserView(user *models.User) userView {
	return userView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Unix(),
	}
}
