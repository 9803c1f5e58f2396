package service

import (
	"context"
	"strings"

	"wallpaper-admin/internal/model"
	"wallpaper-admin/internal/repository"
	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/jwt"
	"wallpaper-admin/pkg/util"
)

// 认证相关错误
var (
	ErrEmailExists        = apperr.BadRequest("Email already exists, please use another email")
	ErrInvalidCredentials = apperr.BadRequest("Invalid email or password")
)

// AuthService 认证服务
// 处理管理员注册和登录，登录成功后签发 Access Token
type AuthService struct {
	adminRepo  *repository.AdminRepository // 管理员数据访问层
	jwtService *jwt.JWTService             // JWT 服务
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(adminRepo *repository.AdminRepository, jwtService *jwt.JWTService) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// RegisterRequest 注册请求（已通过输入校验）
type RegisterRequest struct {
	FirstName string
	LastName  string
	Role      string // 为空时使用 admin
	Email     string
	Password  string
}

// LoginRequest 登录请求（已通过输入校验）
type LoginRequest struct {
	Email    string
	Password string
}

// AdminSummary 注册和登录成功后返回的管理员信息
type AdminSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

// LoginResult 登录结果
type LoginResult struct {
	Admin AdminSummary
	Token string // 写入 access_token Cookie
}

// Register 注册管理员
// 参数:
//   - ctx: 上下文
//   - req: 注册请求
//
// 返回:
//   - *AdminSummary: 新管理员信息
//   - error: 邮箱已存在返回 ErrEmailExists
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AdminSummary, error) {
	email := strings.ToLower(req.Email)

	// 1. 检查邮箱是否已存在
	exists, err := s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 2. 对密码进行哈希
	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleAdmin
	}

	// 3. 创建管理员
	// 并发注册同一邮箱时由唯一索引兜底，返回 *apperr.DuplicateKeyError
	admin := &model.AdminUser{
		Email:     email,
		Password:  passwordHash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	summary := summaryOf(admin)
	return &summary, nil
}

// Login 管理员登录
// 邮箱不存在和密码错误返回同一个错误，不暴露邮箱是否已注册
// 返回:
//   - *LoginResult: 管理员信息和 Token
//   - error: 凭证错误返回 ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if !util.CheckPassword(req.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(ProfileOf(admin))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Admin: summaryOf(admin),
		Token: token,
	}, nil
}

// ProfileOf 将管理员记录转换为 Token 中携带的资料
func ProfileOf(admin *model.AdminUser) jwt.Profile {
	return jwt.Profile{
		ID:        admin.ID,
		Email:     admin.Email,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

func summaryOf(admin *model.AdminUser) AdminSummary {
	return AdminSummary{
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Role:      admin.Role,
		Email:     admin.Email,
	}
}
