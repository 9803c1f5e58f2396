package handler

import (
	"net/url"
	"strings"

	"wallpaper-admin/internal/model"
	"wallpaper-admin/internal/repository"
	"wallpaper-admin/internal/service"
	"wallpaper-admin/internal/validator"
)

// 输入校验失败的响应消息
const (
	msgInvalidInput = "Invalid input parameters"
	msgInvalidQuery = "Invalid query parameters"
)

// 注册和登录字段规则
var (
	firstNameRules = []validator.Rule{
		validator.Min(1, "First name is required"),
		validator.Max(50, "First name must be less than 50 characters"),
	}
	lastNameRules = []validator.Rule{
		validator.Min(1, "Last name is required"),
		validator.Max(50, "Last name must be less than 50 characters"),
	}
	roleRules     = []validator.Rule{validator.OneOf([]string{model.RoleAdmin}, "Role must be 'admin'")}
	emailRules    = []validator.Rule{validator.Email("Invalid email format")}
	passwordRules = []validator.Rule{
		validator.Min(6, "Password must be at least 6 characters long"),
		validator.Password("Password must contain at least one letter, one number and one special character"),
	}
)

// 壁纸字段规则
var (
	titleRules = []validator.Rule{
		validator.Min(model.TitleMinLen, "Title must be at least 3 characters long"),
		validator.Max(model.TitleMaxLen, "Title must be less than 200 characters"),
	}
	descriptionRules = []validator.Rule{
		validator.Min(model.DescriptionMinLen, "Description must be at least 10 characters long"),
		validator.Max(model.DescriptionMaxLen, "Description must be less than 1000 characters"),
	}
	imageURLRules = []validator.Rule{validator.URL("Please provide a valid URL")}
	keywordRules  = []validator.Rule{validator.Min(1, "Keyword cannot be empty")}
	keywordsRules = []validator.Rule{
		validator.Min(model.KeywordsMin, "At least one keyword is required"),
		validator.Max(model.KeywordsMax, "Maximum 20 keywords allowed"),
	}
	categoryRules = []validator.Rule{
		validator.OneOf(model.Categories, "Category must be one of: "+strings.Join(model.Categories, ", ")),
	}
	styleRules = []validator.Rule{validator.OneOf(model.Styles, "Style must be either 'anime' or 'real'")}
)

// 列表排序参数
var (
	sortByValues    = []string{"createdAt", "downloadCount", "title"}
	sortOrderValues = []string{"asc", "desc"}
)

// parseRegister 校验注册请求体
func parseRegister(body []byte) (*service.RegisterRequest, validator.Issues) {
	obj, issues := validator.DecodeObject(body)
	if issues != nil {
		return nil, issues
	}

	firstName := obj.String("firstName", false, false, firstNameRules...)
	lastName := obj.String("lastName", false, false, lastNameRules...)
	role := obj.String("role", false, false, roleRules...)
	email := obj.String("email", false, false, emailRules...)
	password := obj.String("password", false, false, passwordRules...)
	if issues := obj.Issues(); len(issues) > 0 {
		return nil, issues
	}

	return &service.RegisterRequest{
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      *role,
		Email:     *email,
		Password:  *password,
	}, nil
}

// parseLogin 校验登录请求体
func parseLogin(body []byte) (*service.LoginRequest, validator.Issues) {
	obj, issues := validator.DecodeObject(body)
	if issues != nil {
		return nil, issues
	}

	email := obj.String("email", false, false, emailRules...)
	password := obj.String("password", false, false, passwordRules...)
	if issues := obj.Issues(); len(issues) > 0 {
		return nil, issues
	}

	return &service.LoginRequest{Email: *email, Password: *password}, nil
}

// parseCreateWallpaper 校验创建壁纸请求体，字符串字段在校验后去掉首尾空白
func parseCreateWallpaper(body []byte) (*service.CreateWallpaperRequest, validator.Issues) {
	obj, issues := validator.DecodeObject(body)
	if issues != nil {
		return nil, issues
	}

	title := obj.String("title", false, true, titleRules...)
	description := obj.String("description", false, true, descriptionRules...)
	imageURL := obj.String("imageUrl", false, true, imageURLRules...)
	keywords := obj.StringSlice("keywords", false, keywordRules, keywordsRules...)
	category := obj.String("category", false, false, categoryRules...)
	style := obj.String("wallpaperStyle", false, false, styleRules...)
	if issues := obj.Issues(); len(issues) > 0 {
		return nil, issues
	}

	return &service.CreateWallpaperRequest{
		Title:          *title,
		Description:    *description,
		ImageURL:       *imageURL,
		Keywords:       keywords,
		Category:       *category,
		WallpaperStyle: *style,
	}, nil
}

// parseUpdateWallpaper 校验更新壁纸请求体，所有字段可选
func parseUpdateWallpaper(body []byte) (*service.WallpaperPatch, validator.Issues) {
	obj, issues := validator.DecodeObject(body)
	if issues != nil {
		return nil, issues
	}

	patch := &service.WallpaperPatch{
		Title:          obj.String("title", true, true, titleRules...),
		Description:    obj.String("description", true, true, descriptionRules...),
		ImageURL:       obj.String("imageUrl", true, true, imageURLRules...),
		Keywords:       obj.StringSlice("keywords", true, keywordRules, keywordsRules...),
		Category:       obj.String("category", true, false, categoryRules...),
		WallpaperStyle: obj.String("wallpaperStyle", true, false, styleRules...),
		IsActive:       obj.Bool("isActive"),
	}
	if issues := obj.Issues(); len(issues) > 0 {
		return nil, issues
	}
	return patch, nil
}

// wallpaperQuery 壁纸列表查询参数
type wallpaperQuery struct {
	Page   int
	Limit  int
	Filter repository.WallpaperFilter
}

// parseWallpaperQuery 校验壁纸列表查询参数
func parseWallpaperQuery(values url.Values) (*wallpaperQuery, validator.Issues) {
	q := validator.NewQuery(values)

	out := &wallpaperQuery{
		Page:  q.PositiveInt("page", service.DefaultPage),
		Limit: q.PositiveInt("limit", service.DefaultLimit),
		Filter: repository.WallpaperFilter{
			Category:       q.Enum("category", model.FilterAll, append(append([]string{}, model.Categories...), model.FilterAll)),
			WallpaperStyle: q.Enum("wallpaperStyle", model.FilterAll, append(append([]string{}, model.Styles...), model.FilterAll)),
			Keyword:        q.String("keyword"),
			SortBy:         q.Enum("sortBy", "createdAt", sortByValues),
			SortOrder:      q.Enum("sortOrder", "desc", sortOrderValues),
			IsActive:       q.BoolString("isActive"),
		},
	}
	if issues := q.Issues(); len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}
