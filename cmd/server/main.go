// Package main 是管理端服务的入口点
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/internal/app"
	"wallpaper-admin/internal/config"
	"wallpaper-admin/internal/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	log := logger.New(cfg.Log, "admin-service")

	// 设置 Gin 模式
	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}

	// 初始化数据库、Redis 和各层服务
	application, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to connect to DB")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 事件中心在单独的 goroutine 中运行，ctx 取消时断开所有连接
	go application.Hub.Run(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      application.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	log.Infof("Admin Service is running in: %d", cfg.Server.Port)
	log.Infof("Base URL: %s%d", cfg.Server.BaseURL, cfg.Server.Port)

	// 优雅关闭
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := application.Close(); err != nil {
		log.WithError(err).Warn("Failed to close database")
	}

	log.Info("Server exited")
}
