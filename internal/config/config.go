// Package config 负责加载和管理应用程序的配置
// 使用 viper 库支持 YAML 配置文件、.env 文件和环境变量覆盖
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret 未配置 JWT 密钥
var ErrMissingJWTSecret = errors.New("jwt secret is required (JWT_SECRET)")

// Config 是应用程序的根配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`    // 服务器配置
	Database  DatabaseConfig  `mapstructure:"database"`  // 数据库配置
	Redis     RedisConfig     `mapstructure:"redis"`     // Redis 配置
	JWT       JWTConfig       `mapstructure:"jwt"`       // JWT 配置
	Cookie    CookieConfig    `mapstructure:"cookie"`    // 认证 Cookie 配置
	RateLimit RateLimitConfig `mapstructure:"ratelimit"` // 登录限流配置
	Log       LogConfig       `mapstructure:"log"`       // 日志配置
}

// ServerConfig 服务器相关配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`          // 监听端口，默认 3001
	Mode         string        `mapstructure:"mode"`          // 运行模式: debug / release / test
	BaseURL      string        `mapstructure:"base_url"`      // 启动日志中打印的基础地址
	CORS         []string      `mapstructure:"cors"`          // 允许的来源，为空时回显请求来源
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`  // 读超时
	WriteTimeout time.Duration `mapstructure:"write_timeout"` // 写超时
}

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`         // sqlite / mysql / postgres
	DSN          string `mapstructure:"dsn"`            // 连接串，sqlite 时为文件路径
	MaxIdleConns int    `mapstructure:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int    `mapstructure:"max_open_conns"` // 最大打开连接数
	MaxLifetime  int    `mapstructure:"max_lifetime"`   // 连接最大生命周期（秒）
	Debug        bool   `mapstructure:"debug"`          // 打印 SQL
}

// RedisConfig Redis 连接配置
// Enabled 为 false 时不连接 Redis，登录限流和跨实例事件广播随之关闭
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret string `mapstructure:"secret"` // 签名密钥
	Expire string `mapstructure:"expire"` // Access Token 有效期，如 "24h"、"7d"、"3600"
}

// TTL 解析 Expire 为时间间隔
// 除 time.ParseDuration 支持的格式外，还接受以 d 结尾的天数和纯数字秒数
func (c JWTConfig) TTL() (time.Duration, error) {
	raw := strings.TrimSpace(c.Expire)
	if raw == "" {
		return 0, fmt.Errorf("jwt expire is empty")
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(raw, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid jwt expire %q: %w", raw, err)
		}
		return time.Duration(days * float64(24*time.Hour)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid jwt expire %q: %w", raw, err)
	}
	return d, nil
}

// CookieConfig 认证 Cookie 配置
type CookieConfig struct {
	Secure bool `mapstructure:"secure"`
}

// RateLimitConfig 登录限流配置
type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute"` // 每个 IP 每分钟允许的登录次数
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug/info/warn/error
	Format string `mapstructure:"format"` // 日志格式: json/text
}

// Load 从指定路径加载配置文件
// 加载顺序: 默认值 < config.yaml < .env < 环境变量
// 参数:
//   - configPath: 配置文件目录路径 (如 "./configs")
//
// 返回:
//   - *Config: 配置对象
//   - error: 读取失败或缺少 JWT 密钥时返回错误
func Load(configPath string) (*Config, error) {
	loadDotEnv(".env")

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// 例如: DATABASE_DRIVER -> database.driver
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVariables(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件不存在时继续使用默认值和环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, ErrMissingJWTSecret
	}
	if _, err := cfg.JWT.TTL(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindEnvVariables 绑定环境变量到配置项
// 兼容旧版服务使用的 PORT / DATABASE_URL / JWT_SECRET / JWT_EXPIRE
func bindEnvVariables(v *viper.Viper) {
	// 服务器配置
	v.BindEnv("server.port", "PORT", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.base_url", "BASE_URL")

	// 数据库配置
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_URL")

	// Redis 配置
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.username", "REDIS_USERNAME")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT 配置
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expire", "JWT_EXPIRE")

	// 日志配置
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
}

// setDefaults 设置配置项的默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:")
	v.SetDefault("server.cors", []string{})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/wallpaper.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_lifetime", 3600)
	v.SetDefault("database.debug", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 100)

	v.SetDefault("jwt.expire", "24h")

	v.SetDefault("cookie.secure", true)

	v.SetDefault("ratelimit.login_per_minute", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
