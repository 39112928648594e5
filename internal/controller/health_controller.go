package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"resilience_backend/internal/util"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary Health check
// @Description Reports service and dependency status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	redisStatus := "disabled"
	if c.Redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"redis":    redisStatus,
		},
	})
}
