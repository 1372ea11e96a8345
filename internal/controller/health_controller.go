package controller

import (
	"context"
	"net/http"
	"time"

	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pinger 可探活的外部依赖（如 Redis）
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB    *gorm.DB
	Cache Pinger
}

func NewHealthController(db *gorm.DB, cache Pinger) *HealthController {
	return &HealthController{DB: db, Cache: cache}
}

// @Summary 健康检查
// @Description 检查数据库与缓存状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}
	if err := sqlDB.PingContext(reqCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	cacheStatus := "disabled"
	if c.Cache != nil {
		cacheStatus = "up"
		if err := c.Cache.Ping(reqCtx); err != nil {
			// 缓存不可用时服务降级运行
			cacheStatus = "down"
		}
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"cache":    cacheStatus,
		},
	})
}
