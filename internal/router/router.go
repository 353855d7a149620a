package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sudooom.score/internal/config"
	"sudooom.score/internal/handler"
	"sudooom.score/internal/metrics"
	"sudooom.score/internal/middleware"
)

// Deps 路由依赖
type Deps struct {
	Validator           middleware.TokenValidator
	RateLimiter         *middleware.RateLimiter // nil 表示不限流
	Health              http.Handler
	RankingHandler      *handler.RankingHandler
	NudgeHandler        *handler.NudgeHandler
	NotificationHandler *handler.NotificationHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置 Gin 模式
	gin.SetMode(cfg.App.Mode)

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowCredentials,
	))

	// 运维接口
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Health != nil {
		r.GET("/ready", gin.WrapH(deps.Health))
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1（全部需要认证）
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(deps.Validator))
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Handler())
	}
	{
		// 排名接口
		groups := v1.Group("/groups")
		{
			groups.GET("/:id/ranking", deps.RankingHandler.GetWeeklyRanking)
		}

		// 提醒接口
		nudges := v1.Group("/nudges")
		{
			nudges.GET("/:receiverId", deps.NudgeHandler.CanSend)
			nudges.POST("", deps.NudgeHandler.Send)
		}

		// 通知收件箱
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", deps.NotificationHandler.List)
			notifications.GET("/:id", deps.NotificationHandler.Get)
			notifications.DELETE("/:id", deps.NotificationHandler.Delete)
		}
	}

	return r
}
