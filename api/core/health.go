package core

import (
	"context"
	"net/http"
	"time"

	"github.com/profilehub/profile-hub/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

func healthHandler(deps *RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{
			"database": checkDatabaseHealth(deps.DB),
			"storage":  checkStorageHealth(deps),
		}

		httpStatus := http.StatusOK
		for _, checkResult := range checks {
			if result, ok := checkResult.(string); ok && result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks":  checks,
		})
	}
}

func checkDatabaseHealth(db *gorm.DB) string {
	if db == nil {
		return "not initialized"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func checkStorageHealth(deps *RouterDependencies) string {
	if deps.StorageProvider == nil {
		return "not initialized"
	}
	if err := deps.StorageProvider.Health(context.Background()); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
