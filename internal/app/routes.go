package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/internal/handler"
	"wallpaper-admin/internal/middleware"
	"wallpaper-admin/pkg/response"
)

// Router 创建管理端服务的 Gin 引擎并注册所有路由
func (a *App) Router() *gin.Engine {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = a.Config.Server.CORS

	router := newEngine(a.Log, corsCfg)

	authHandler, adminHandler, wallpaperHandler, eventsHandler := a.handlers()
	requireAdmin := middleware.Auth(a.JWT)

	// Redis 未启用时不限流
	var limiter middleware.Limiter
	if a.Redis != nil {
		limiter = a.Redis
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := router.Group("/api/v1/admin")

	// 认证与管理员
	auth := admin.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", middleware.LoginRateLimit(limiter, a.Config.RateLimit.LoginPerMinute, a.Log), authHandler.Login)
		auth.POST("/logout", requireAdmin, authHandler.Logout)
		auth.GET("/me", requireAdmin, authHandler.Me)
		auth.GET("", requireAdmin, adminHandler.List)
		auth.GET("/", requireAdmin, adminHandler.List)
		auth.GET("/:id", requireAdmin, adminHandler.Get)
		auth.DELETE("/:id", requireAdmin, adminHandler.Delete)
	}

	// 壁纸，读取接口公开，写入需要登录
	wallpapers := admin.Group("/wallpapers")
	{
		wallpapers.GET("/home", wallpaperHandler.Home)
		wallpapers.GET("", wallpaperHandler.List)
		wallpapers.GET("/", wallpaperHandler.List)
		wallpapers.GET("/:id", wallpaperHandler.Get)
		wallpapers.POST("/:id/download", wallpaperHandler.IncrementDownload)

		wallpapers.POST("", requireAdmin, wallpaperHandler.Create)
		wallpapers.POST("/", requireAdmin, wallpaperHandler.Create)
		wallpapers.PUT("/:id", requireAdmin, wallpaperHandler.Update)
		wallpapers.DELETE("/:id", requireAdmin, wallpaperHandler.Delete)
	}

	// 事件推送
	admin.GET("/events", requireAdmin, eventsHandler.ServeEvents)

	return router
}

// HelloRouter 创建壁纸服务骨架的 Gin 引擎
// 只提供连通性检查接口，共用 404 兜底和错误转换
func HelloRouter(log *logrus.Entry) *gin.Engine {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = []string{"*"}
	corsCfg.AllowCredentials = false

	router := newEngine(log, corsCfg)
	router.POST("/api/v1/test/hello", handler.Hello)
	return router
}

// newEngine 创建带公共中间件的 Gin 引擎
// 未匹配的路由和方法统一返回 404
func newEngine(log *logrus.Entry, corsCfg middleware.CORSConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(corsCfg))
	router.Use(middleware.ErrorHandler(log))

	router.NoRoute(response.NotFound)
	router.NoMethod(response.NotFound)
	return router
}
