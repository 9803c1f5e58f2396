// Package app 组装管理端服务的各个组件
// App 在 main 中创建一次，持有数据库、Redis、事件中心和各层服务，关闭时统一释放
package app

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wallpaper-admin/internal/cache"
	"wallpaper-admin/internal/config"
	"wallpaper-admin/internal/handler"
	"wallpaper-admin/internal/repository"
	"wallpaper-admin/internal/service"
	"wallpaper-admin/internal/storage"
	"wallpaper-admin/internal/websocket"
	"wallpaper-admin/pkg/jwt"
)

// App 应用上下文
type App struct {
	Config *config.Config
	Log    *logrus.Entry
	DB     *gorm.DB
	Redis  *cache.RedisCache // 未启用 Redis 时为 nil
	JWT    *jwt.JWTService
	Hub    *websocket.Hub

	AuthService      *service.AuthService
	AdminService     *service.AdminService
	WallpaperService *service.WallpaperService
}

// New 创建应用上下文
// 连接并迁移数据库；启用 Redis 但连接失败时记录警告，登录限流和跨实例事件随之关闭
// 参数:
//   - cfg: 配置
//   - log: 日志
//
// 返回:
//   - *App: 应用上下文
//   - error: 数据库连接或迁移失败
func New(cfg *config.Config, log *logrus.Entry) (*App, error) {
	ttl, err := cfg.JWT.TTL()
	if err != nil {
		return nil, err
	}

	db, err := storage.Connect(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		storage.Close(db)
		return nil, err
	}

	a := &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		JWT:    jwt.NewJWTService(cfg.JWT.Secret, ttl),
	}

	var relay websocket.Relay
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, login rate limiting and event relay disabled")
		} else {
			a.Redis = redisCache
			relay = redisCache
		}
	}
	a.Hub = websocket.NewHub(log, relay)

	adminRepo := repository.NewAdminRepository(db)
	wallpaperRepo := repository.NewWallpaperRepository(db)

	a.AuthService = service.NewAuthService(adminRepo, a.JWT)
	a.AdminService = service.NewAdminService(adminRepo, a.Hub)
	a.WallpaperService = service.NewWallpaperService(wallpaperRepo, a.Hub)

	return a, nil
}

// handlers 创建路由使用的处理器
func (a *App) handlers() (*handler.AuthHandler, *handler.AdminHandler, *handler.WallpaperHandler, *websocket.Handler) {
	return handler.NewAuthHandler(a.AuthService, a.Config.Cookie.Secure),
		handler.NewAdminHandler(a.AdminService),
		handler.NewWallpaperHandler(a.WallpaperService),
		websocket.NewHandler(a.Hub, a.Config.Server.CORS)
}

// Close 释放数据库和 Redis 连接
func (a *App) Close() error {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.WithError(err).Warn("failed to close redis")
		}
	}
	return storage.Close(a.DB)
}
