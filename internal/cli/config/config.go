// Package config 管理 CLI 客户端的本地配置
// 配置保存在 ~/.wallpaperctl/config.yaml，记录服务器地址和登录后的 access_token
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultServerURL 默认服务器地址
const DefaultServerURL = "http://localhost:3001"

// Profile CLI 配置结构
type Profile struct {
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	URL string `mapstructure:"url"` // HTTP API 地址
}

// AuthConfig 登录凭证
type AuthConfig struct {
	AccessToken string `mapstructure:"access_token"`
	Email       string `mapstructure:"email"`
}

// Store 读写配置文件
type Store struct {
	v       *viper.Viper
	path    string
	profile Profile
}

// DefaultDir 返回默认配置目录 ~/.wallpaperctl
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户目录失败: %w", err)
	}
	return filepath.Join(home, ".wallpaperctl"), nil
}

// Open 打开配置目录下的 config.yaml，不存在时使用默认值
// 参数:
//   - dir: 配置目录
//
// 返回:
//   - *Store: 配置存储
//   - error: 目录无法创建或文件无法解析
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("创建配置目录失败: %w", err)
	}

	s := &Store{
		v:    viper.New(),
		path: filepath.Join(dir, "config.yaml"),
	}
	s.v.SetConfigFile(s.path)
	s.v.SetConfigType("yaml")

	s.v.SetDefault("server.url", DefaultServerURL)
	s.v.SetDefault("auth.access_token", "")
	s.v.SetDefault("auth.email", "")

	if err := s.v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置失败: %w", err)
		}
	}

	if err := s.v.Unmarshal(&s.profile); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return s, nil
}

// Path 配置文件路径
func (s *Store) Path() string {
	return s.path
}

// ServerURL 服务器地址
func (s *Store) ServerURL() string {
	return s.profile.Server.URL
}

// AccessToken 登录凭证，未登录时为空
func (s *Store) AccessToken() string {
	return s.profile.Auth.AccessToken
}

// Email 当前登录的邮箱
func (s *Store) Email() string {
	return s.profile.Auth.Email
}

// IsLoggedIn 是否已登录
func (s *Store) IsLoggedIn() bool {
	return s.profile.Auth.AccessToken != ""
}

// SetServerURL 设置服务器地址（仅在内存中，SaveAuth/Save 时写入）
func (s *Store) SetServerURL(url string) {
	s.v.Set("server.url", url)
	s.profile.Server.URL = url
}

// SaveAuth 保存登录凭证
func (s *Store) SaveAuth(email, token string) error {
	s.v.Set("auth.email", email)
	s.v.Set("auth.access_token", token)
	s.profile.Auth = AuthConfig{AccessToken: token, Email: email}
	return s.Save()
}

// ClearAuth 清除登录凭证
func (s *Store) ClearAuth() error {
	return s.SaveAuth("", "")
}

// Save 写入配置文件
func (s *Store) Save() error {
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("保存配置失败: %w", err)
	}
	return os.Chmod(s.path, 0o600)
}
