// Package logger 根据配置创建 logrus 日志实例
// 日志实例由 main 显式创建并逐层传递，不使用包级全局变量
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"wallpaper-admin/internal/config"
)

// New 创建日志实例
// 参数:
//   - cfg: 日志配置（级别和格式）
//   - service: 服务名，作为每条日志的 service 字段
//
// 返回:
//   - *logrus.Entry: 带 service 字段的日志入口
func New(cfg config.LogConfig, service string) *logrus.Entry {
	return NewWithWriter(cfg, service, os.Stdout)
}

// NewWithWriter 与 New 相同，但输出到指定 writer
func NewWithWriter(cfg config.LogConfig, service string, out io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return log.WithField("service", service)
}
