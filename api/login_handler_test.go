package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/profilehub/profile-hub/database/models"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	"github.com/profilehub/profile-hub/internal/auth"
	cryptopackage "github.com/profilehub/profile-hub/utils/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLoginTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Profile{})
	assert.NoError(t, err)

	repo := accounts.NewRepository(db)

	hash, err := cryptopackage.GenerateFromPassword("pw1secret")
	assert.NoError(t, err)
	fullName := "Ana Example"
	err = repo.CreateUser(&models.User{
		Username: "ana",
		Email:    "ana@example.com",
		FullName: &fullName,
		Password: hash,
		IsActive: true,
	})
	assert.NoError(t, err)

	jwtService, err := auth.NewJWTService("test-secret-key-at-least-32-characters-long", 30*time.Minute)
	assert.NoError(t, err)
	loginService := auth.NewLoginService(repo, jwtService)

	router := gin.New()
	router.POST("/api/auth/login", NewLoginHandler(loginService).LoginHandlerFunc)
	return router
}

func postLogin(router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	router := setupLoginTest(t)

	w := postLogin(router, map[string]string{
		"email":    "ana@example.com",
		"password": "pw1secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, "Ana Example", resp.FullName)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	router := setupLoginTest(t)

	w := postLogin(router, map[string]string{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	router := setupLoginTest(t)

	w := postLogin(router, map[string]string{
		"email":    "nobody@example.com",
		"password": "pw1secret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	router := setupLoginTest(t)

	w := postLogin(router, map[string]string{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	router := setupLoginTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
