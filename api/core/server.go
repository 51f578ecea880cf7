package core

import (
	"net/http"
	"time"

	"github.com/profilehub/profile-hub/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func setupRouter(deps *RouterDependencies) *gin.Engine {
	cfg := deps.Config

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// Cap multipart memory to the configured upload limit.
	router.MaxMultipartMemory = int64(cfg.UploadMaxSizeMB) << 20

	RegisterRoutes(router, deps)

	return router
}

// StartServer builds the http.Server around the configured router.
func StartServer(deps *RouterDependencies) *http.Server {
	cfg := deps.Config
	router := setupRouter(deps)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
}
