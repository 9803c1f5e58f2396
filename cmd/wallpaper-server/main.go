// Package main 是壁纸服务骨架的入口点
// 只连接数据库并提供连通性检查接口
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
	"wallpaper-admin/internal/storage"
)

func main() {
	cfg, err := config.Load("./configs")
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	log := logger.New(cfg.Log, "wallpaper-service")

	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := storage.Connect(cfg.Database, log)
	if err != nil {
		log.WithError(err).Error("Failed to connect to DB")
		os.Exit(1)
	}
	defer storage.Close(db)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.HelloRouter(log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	log.Infof("Service is running on port: %d", cfg.Server.Port)
	log.Infof("Base URL: %s%d", cfg.Server.BaseURL, cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
}
