package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/profilehub/profile-hub/config"
	"github.com/profilehub/profile-hub/database/models"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	"github.com/profilehub/profile-hub/database/repo/profiles"
	svcAccounts "github.com/profilehub/profile-hub/internal/accounts"
	"github.com/profilehub/profile-hub/internal/assets"
	"github.com/profilehub/profile-hub/internal/auth"
	svcProfile "github.com/profilehub/profile-hub/internal/profile"
	"github.com/profilehub/profile-hub/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Profile{})
	assert.NoError(t, err)

	provider, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	jwtService, err := auth.NewJWTService("test-secret-key-at-least-32-characters-long", 30*time.Minute)
	assert.NoError(t, err)

	accountsRepo := accounts.NewRepository(db)
	profilesRepo := profiles.NewRepository(db)
	assetManager := assets.NewManager(provider, 1024, 85)

	deps := &RouterDependencies{
		DB:              db,
		Config:          &config.Config{ServerPort: 8080, UploadMaxSizeMB: 10},
		StorageProvider: provider,
		AssetManager:    assetManager,
		JWTService:      jwtService,
		LoginService:    auth.NewLoginService(accountsRepo, jwtService),
		AccountsRepo:    accountsRepo,
		AccountsService: svcAccounts.NewService(accountsRepo, profilesRepo, assetManager),
		ProfileService:  svcProfile.NewService(accountsRepo, profilesRepo, assetManager),
	}

	return setupRouter(deps)
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, imageName string, imageBytes []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		err := writer.WriteField(key, value)
		assert.NoError(t, err)
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		assert.NoError(t, err)
		_, err = part.Write(imageBytes)
		assert.NoError(t, err)
	}
	err := writer.Close()
	assert.NoError(t, err)

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func smallJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, nil)
	assert.NoError(t, err)
	return buf.Bytes()
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, email string) string {
	w := doJSON(router, http.MethodPost, "/api/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "pw1secret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "pw1secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	router := setupTestRouter(t)

	body := map[string]string{
		"username": "ana",
		"email":    "ana@example.com",
		"password": "pw1secret",
	}
	w := doJSON(router, http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/me", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRoundTrip(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router, "ana", "ana@example.com")

	w := doJSON(router, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"ana"`)

	w = doJSON(router, http.MethodPatch, "/api/me", token, map[string]string{
		"full_name": "Ana Example",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_name":"Ana Example"`)
}

func TestProfileLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router, "ana", "ana@example.com")

	// No profile yet.
	w := doJSON(router, http.MethodGet, "/api/profiles/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Create with text fields and an avatar.
	w = doMultipart(t, router, http.MethodPost, "/api/profiles", token,
		map[string]string{"bio": "hello", "location": "Lisbon"},
		"avatar.jpg", smallJPEG(t))
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			UserID   uint   `json:"user_id"`
			ImageURL string `json:"image_url"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.Data.ImageURL)

	// Second create conflicts.
	w = doMultipart(t, router, http.MethodPost, "/api/profiles", token,
		map[string]string{"bio": "again"}, "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The avatar is served under /media.
	req := httptest.NewRequest(http.MethodGet, created.Data.ImageURL, nil)
	media := httptest.NewRecorder()
	router.ServeHTTP(media, req)
	assert.Equal(t, http.StatusOK, media.Code)
	assert.Equal(t, "image/jpeg", media.Header().Get("Content-Type"))

	// Blank fields in an update leave stored values unchanged.
	w = doMultipart(t, router, http.MethodPatch, "/api/profiles/me", token,
		map[string]string{"bio": ""}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bio":"hello"`)

	// A real update lands.
	w = doMultipart(t, router, http.MethodPatch, "/api/profiles/me", token,
		map[string]string{"bio": "updated"}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bio":"updated"`)

	// The public view needs no token.
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/profiles/%d", created.Data.UserID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"ana"`)
	assert.Contains(t, w.Body.String(), `"bio":"updated"`)

	// Drop the avatar.
	w = doJSON(router, http.MethodDelete, "/api/profiles/me/image", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, created.Data.ImageURL, nil)
	media = httptest.NewRecorder()
	router.ServeHTTP(media, req)
	assert.Equal(t, http.StatusNotFound, media.Code)
}

func TestProfileRejectsUnsupportedUpload(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router, "ana", "ana@example.com")

	w := doMultipart(t, router, http.MethodPost, "/api/profiles", token,
		nil, "payload.exe", []byte("MZ not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAccountInvalidatesAccess(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router, "ana", "ana@example.com")

	w := doJSON(router, http.MethodDelete, "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The token still parses, but the account behind it is gone.
	w = doJSON(router, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicProfileNotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/profiles/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/api/profiles/not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaRejectsTraversal(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/media/..%2Fsecret", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)
}
