package core

import (
	"github.com/profilehub/profile-hub/api"
	"github.com/profilehub/profile-hub/api/common"
	handlerProfiles "github.com/profilehub/profile-hub/api/handler/profiles"
	handlerUsers "github.com/profilehub/profile-hub/api/handler/users"
	"github.com/profilehub/profile-hub/api/middleware"
	"github.com/profilehub/profile-hub/config"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	svcAccounts "github.com/profilehub/profile-hub/internal/accounts"
	"github.com/profilehub/profile-hub/internal/assets"
	"github.com/profilehub/profile-hub/internal/auth"
	svcProfile "github.com/profilehub/profile-hub/internal/profile"
	"github.com/profilehub/profile-hub/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterDependencies holds everything route registration needs.
type RouterDependencies struct {
	DB              *gorm.DB
	Config          *config.Config
	StorageProvider storage.Provider
	AssetManager    *assets.Manager
	JWTService      *auth.JWTService
	LoginService    *auth.LoginService
	AccountsRepo    *accounts.Repository
	AccountsService *svcAccounts.Service
	ProfileService  *svcProfile.Service
}

// RegisterRoutes registers all routes.
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerMediaRoutes(router, deps)
	registerAPIRoutes(router, deps)
}

func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	router.GET("/health", healthHandler(deps))

	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
}

func registerMediaRoutes(router *gin.Engine, deps *RouterDependencies) {
	mediaHandler := NewMediaHandler(deps.AssetManager)
	router.GET("/media/:filename", mediaHandler.GetAsset)
}

func registerAPIRoutes(router *gin.Engine, deps *RouterDependencies) {
	userHandler := handlerUsers.NewHandler(deps.AccountsService)
	profileHandler := handlerProfiles.NewHandler(deps.ProfileService)
	loginHandler := api.NewLoginHandler(deps.LoginService)

	requireAuth := middleware.RequireAuth(deps.JWTService, deps.AccountsRepo)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(c *gin.Context) { // API responses must not be cached
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc) // POST /api/auth/login
		}

		usersGroup := apiGroup.Group("/users")
		{
			usersGroup.POST("", userHandler.RegisterHandler) // POST /api/users
			usersGroup.GET("", userHandler.ListHandler)      // GET  /api/users
			usersGroup.GET("/:id", userHandler.GetHandler)   // GET  /api/users/{id}
		}

		meGroup := apiGroup.Group("/me")
		meGroup.Use(requireAuth)
		{
			meGroup.GET("", userHandler.MeHandler)          // GET    /api/me
			meGroup.PATCH("", userHandler.UpdateMeHandler)  // PATCH  /api/me
			meGroup.DELETE("", userHandler.DeleteMeHandler) // DELETE /api/me
		}

		profilesGroup := apiGroup.Group("/profiles")
		{
			profilesGroup.GET("/:user_id", profileHandler.GetPublicHandler) // GET /api/profiles/{user_id}

			ownGroup := profilesGroup.Group("")
			ownGroup.Use(requireAuth)
			{
				ownGroup.POST("", profileHandler.CreateHandler)                 // POST   /api/profiles
				ownGroup.GET("/me", profileHandler.GetMeHandler)                // GET    /api/profiles/me
				ownGroup.PATCH("/me", profileHandler.UpdateMeHandler)           // PATCH  /api/profiles/me
				ownGroup.DELETE("/me/image", profileHandler.ClearImageHandler)  // DELETE /api/profiles/me/image
			}
		}
	}
}
