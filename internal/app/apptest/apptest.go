// Package apptest 在测试中启动完整的管理端服务
package apptest

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"wallpaper-admin/internal/app"
	"wallpaper-admin/internal/config"
	"wallpaper-admin/internal/logger"
	"wallpaper-admin/internal/service"
)

// Password 测试管理员使用的密码
const Password = "secret1!"

// NewServer 使用临时 SQLite 数据库启动服务，测试结束时关闭
func NewServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          filepath.Join(t.TempDir(), "apptest.db"),
			MaxIdleConns: 4,
			MaxOpenConns: 8,
			MaxLifetime:  60,
		},
		JWT: config.JWTConfig{Secret: "apptest-secret", Expire: "1h"},
	}
	log := logger.NewWithWriter(config.LogConfig{Level: "error"}, "apptest", io.Discard)

	a, err := app.New(cfg, log)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go a.Hub.Run(ctx)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		cancel()
		srv.Close()
		a.Close()
	})
	return srv, a
}

// RegisterAdmin 直接通过服务层注册管理员
func RegisterAdmin(t *testing.T, a *app.App, email string) {
	t.Helper()
	_, err := a.AuthService.Register(context.Background(), &service.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  Password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}
