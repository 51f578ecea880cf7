package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/profilehub/profile-hub/api/common"
	"github.com/profilehub/profile-hub/internal/auth"
	"github.com/profilehub/profile-hub/utils"

	"github.com/gin-gonic/gin"
)

// LoginHandler handles credential exchange for access tokens.
type LoginHandler struct {
	loginService *auth.LoginService
}

func NewLoginHandler(loginService *auth.LoginService) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
	}
}

type userAuthRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	FullName    string `json:"full_name"`
	Username    string `json:"username"`
}

// LoginHandlerFunc exchanges an email (or username) and password for a token.
// The response body is the token payload itself so clients can consume it
// without unwrapping an envelope.
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	if h.loginService == nil {
		common.RespondError(c, http.StatusInternalServerError, "Login service not initialized")
		return
	}

	var req userAuthRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("[auth] failed login attempt for %s", utils.SanitizeLogUsername(req.Email))
			common.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	fullName := ""
	if result.User.FullName != nil {
		fullName = *result.User.FullName
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		FullName:    fullName,
		Username:    result.User.Username,
	})
}
